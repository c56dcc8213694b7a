package model

import "time"

// AboutItem は自己紹介セクションの1項目を表す。
// Contentは保存前にサニタイズ済みのHTMLを保持する（公開側はエスケープせずに描画する）。
type AboutItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon,omitempty"`
	Category  string    `json:"category,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Project は制作物を表す。
// ImageとFilesは /uploads/ 配下の公開URLを保持する。
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tech        []string  `json:"tech"`
	Link        string    `json:"link,omitempty"`
	GithubLink  string    `json:"github_link,omitempty"`
	Image       string    `json:"image,omitempty"`
	Files       []string  `json:"files"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Experience は職務経歴の1件を表す。
// StartとEndは "YYYY-MM" 形式の文字列。Endが空の場合は在職中を意味する。
type Experience struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	Start       string    `json:"start"`
	End         string    `json:"end,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Education は学歴の1件を表す。
type Education struct {
	ID          string    `json:"id"`
	Degree      string    `json:"degree"`
	Institution string    `json:"institution"`
	Start       string    `json:"start"`
	End         string    `json:"end,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// SocialIcons は公開側がアイコン名として解釈できる値の一覧。
var SocialIcons = []string{
	"FaGithub",
	"FaTwitter",
	"FaTelegramPlane",
	"FaLinkedin",
	"FaWhatsapp",
	"FaGlobe",
}

// SocialLink はSNSリンクの1件を表す。管理APIからは読み取り専用。
type SocialLink struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon"`
}

// ContactMessage は問い合わせフォームから受信したメッセージを表す。
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// BlogPost は外部ブログフィードから取得した記事を表す。
type BlogPost struct {
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Summary   string    `json:"summary,omitempty"`
	Published time.Time `json:"published"`
}
