package middleware

import "net/http"

// NewSecurityHeadersMiddleware は全レスポンスに共通のセキュリティヘッダーを
// 付与するミドルウェアを返す。本体はJSONのAPIだが、/uploads配下では
// 管理者がアップロードしたファイルをそのまま配信するため、紛れ込んだ
// HTMLやスクリプトをブラウザに実行させないヘッダーを全経路で立てる。
func NewSecurityHeadersMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			// 配信ファイルが文書として解釈されても何も読み込ませない。
			// SPAは別オリジンから画像を埋め込むので、リソースとしての
			// 参照だけCross-Origin-Resource-Policyで許す。
			w.Header().Set("Content-Security-Policy", "default-src 'none'; img-src 'self'")
			w.Header().Set("Cross-Origin-Resource-Policy", "cross-origin")
			next.ServeHTTP(w, r)
		})
	}
}
