package i18n

import (
	"fmt"
	"strings"
)

const (
	LocaleEnglish = "en"
	LocaleKorean  = "ko"

	DefaultLocale = LocaleEnglish
)

// Messages holds every user-visible string for one locale.
type Messages struct {
	UploadBusy        string
	LoadBusy          string
	QueryBusy         string
	UploadSuccess     string
	LoadSuccessFormat string // %s = filename
	UploadFailed      string
	LoadFailed        string
	QueryFailed       string
	Connectivity      string
	FileTooLarge      string
	ErrorPrefix       string
	OverviewLabel     string
	StepsLabel        string
	NotesLabel        string
	PageLabelFormat   string // %d = page number
	UserSender        string
	AssistantSender   string
	InputPlaceholder  string
	FooterFormat      string // %s = model, %d = tokens
	ImportNoMatches   string
	ImportProgressFmt string // %d = index, %d = total, %s = filename
	ImportDoneFmt     string // %d = succeeded, %d = total
	SettingsSaved     string
	TokenSaved        string
	TokenDeleted      string

	Labels Labels
}

// Labels are the static strings of the page chrome, sent to the webview as-is.
type Labels struct {
	UploadButton         string `json:"uploadButton"`
	ImportButton         string `json:"importButton"`
	ImportPatternButton  string `json:"importPatternButton"`
	ImportPatternHint    string `json:"importPatternHint"`
	ImportManifestButton string `json:"importManifestButton"`
	SendButton           string `json:"sendButton"`
	PagesFormat          string `json:"pagesFormat"`  // {n}
	ChunksFormat         string `json:"chunksFormat"` // {n}
	SettingsTitle        string `json:"settingsTitle"`
	BackendURL           string `json:"backendUrl"`
	Language             string `json:"language"`
	TimeoutSeconds       string `json:"timeoutSeconds"`
	Save                 string `json:"save"`
	Token                string `json:"token"`
	SaveToken            string `json:"saveToken"`
	DeleteToken          string `json:"deleteToken"`
	TokenStored          string `json:"tokenStored"`
	TokenMissing         string `json:"tokenMissing"`
	ReferencesTitle      string `json:"referencesTitle"`
}

var catalogs = map[string]Messages{
	LocaleEnglish: {
		UploadBusy:        "Uploading and processing document...",
		LoadBusy:          "Loading document...",
		QueryBusy:         "Generating answer...",
		UploadSuccess:     "The document was processed successfully!",
		LoadSuccessFormat: "%s was loaded.",
		UploadFailed:      "An error occurred while processing the document.",
		LoadFailed:        "An error occurred while loading the document.",
		QueryFailed:       "An error occurred while answering the question.",
		Connectivity:      "Could not reach the server.",
		FileTooLarge:      "The file is too large. The maximum size is 50MB.",
		ErrorPrefix:       "Error",
		OverviewLabel:     "Overview",
		StepsLabel:        "Step-by-step",
		NotesLabel:        "Notes",
		PageLabelFormat:   "Page %d",
		UserSender:        "You",
		AssistantSender:   "AI assistant",
		InputPlaceholder:  "Ask a question...",
		FooterFormat:      "%s · %d tokens",
		ImportNoMatches:   "No PDF files matched the pattern.",
		ImportProgressFmt: "Importing %d of %d: %s",
		ImportDoneFmt:     "Imported %d of %d files.",
		SettingsSaved:     "Settings saved.",
		TokenSaved:        "API token saved.",
		TokenDeleted:      "API token removed.",
		Labels: Labels{
			UploadButton:         "Upload PDF",
			ImportButton:         "Import PDFs",
			ImportPatternButton:  "Import matching",
			ImportPatternHint:    "e.g. ~/manuals/**/*.pdf",
			ImportManifestButton: "Import from list",
			SendButton:           "Send",
			PagesFormat:          "{n} pages",
			ChunksFormat:         "{n} chunks",
			SettingsTitle:        "Settings",
			BackendURL:           "Backend URL",
			Language:             "Language",
			TimeoutSeconds:       "Timeout (seconds)",
			Save:                 "Save",
			Token:                "API token",
			SaveToken:            "Save token",
			DeleteToken:          "Remove token",
			TokenStored:          "A token is stored.",
			TokenMissing:         "No token stored.",
			ReferencesTitle:      "References",
		},
	},
	LocaleKorean: {
		UploadBusy:        "PDF 업로드 및 처리 중...",
		LoadBusy:          "PDF 로드 중...",
		QueryBusy:         "답변 생성 중...",
		UploadSuccess:     "PDF가 성공적으로 처리되었습니다!",
		LoadSuccessFormat: "%s이(가) 로드되었습니다.",
		UploadFailed:      "PDF 처리 중 오류가 발생했습니다.",
		LoadFailed:        "PDF 로드 중 오류가 발생했습니다.",
		QueryFailed:       "질의 처리 중 오류가 발생했습니다.",
		Connectivity:      "서버 연결 오류가 발생했습니다.",
		FileTooLarge:      "파일 크기가 너무 큽니다. 최대 50MB까지 가능합니다.",
		ErrorPrefix:       "오류",
		OverviewLabel:     "개요",
		StepsLabel:        "단계별 설명",
		NotesLabel:        "참고사항",
		PageLabelFormat:   "페이지 %d",
		UserSender:        "사용자",
		AssistantSender:   "AI 어시스턴트",
		InputPlaceholder:  "질문을 입력하세요...",
		FooterFormat:      "%s · 토큰 %d개",
		ImportNoMatches:   "패턴과 일치하는 PDF 파일이 없습니다.",
		ImportProgressFmt: "가져오는 중 %d/%d: %s",
		ImportDoneFmt:     "%d/%d개 파일을 가져왔습니다.",
		SettingsSaved:     "설정이 저장되었습니다.",
		TokenSaved:        "API 토큰이 저장되었습니다.",
		TokenDeleted:      "API 토큰이 삭제되었습니다.",
		Labels: Labels{
			UploadButton:         "PDF 업로드",
			ImportButton:         "PDF 가져오기",
			ImportPatternButton:  "패턴으로 가져오기",
			ImportPatternHint:    "예: ~/manuals/**/*.pdf",
			ImportManifestButton: "목록에서 가져오기",
			SendButton:           "전송",
			PagesFormat:          "{n}페이지",
			ChunksFormat:         "청크 {n}개",
			SettingsTitle:        "설정",
			BackendURL:           "백엔드 URL",
			Language:             "언어",
			TimeoutSeconds:       "제한 시간(초)",
			Save:                 "저장",
			Token:                "API 토큰",
			SaveToken:            "토큰 저장",
			DeleteToken:          "토큰 삭제",
			TokenStored:          "토큰이 저장되어 있습니다.",
			TokenMissing:         "저장된 토큰이 없습니다.",
			ReferencesTitle:      "참고 자료",
		},
	},
}

// For returns the catalog for locale, falling back to English. Region suffixes
// such as "ko-KR" are accepted.
func For(locale string) Messages {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	if m, ok := catalogs[locale]; ok {
		return m
	}
	return catalogs[DefaultLocale]
}

func Supported(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}

func (m Messages) PageLabel(page int) string {
	return fmt.Sprintf(m.PageLabelFormat, page)
}

func (m Messages) LoadSuccess(filename string) string {
	return fmt.Sprintf(m.LoadSuccessFormat, filename)
}

func (m Messages) ErrorTurn(serverMessage string) string {
	return fmt.Sprintf("%s: %s", m.ErrorPrefix, serverMessage)
}

func (m Messages) ImportProgress(index, total int, filename string) string {
	return fmt.Sprintf(m.ImportProgressFmt, index, total, filename)
}

func (m Messages) ImportDone(succeeded, total int) string {
	return fmt.Sprintf(m.ImportDoneFmt, succeeded, total)
}
