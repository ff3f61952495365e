package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type MessageKey string

const (
	MsgNoText       MessageKey = "history.no_text"
	MsgUnknownVoice MessageKey = "history.unknown_voice"
	MsgListenedUpTo MessageKey = "history.listened_up_to"
	MsgNotStarted   MessageKey = "history.not_started"
	MsgRowHint      MessageKey = "history.row_hint"
	MsgEmptyHistory MessageKey = "history.empty"
	MsgUnknownDate  MessageKey = "history.unknown_date"
	MsgColContent   MessageKey = "history.col_content"
	MsgColVoice     MessageKey = "history.col_voice"
	MsgColCreated   MessageKey = "history.col_created"

	MsgAppName        MessageKey = "app.name"
	MsgAppDescription MessageKey = "app.description"
	MsgNavDashboard   MessageKey = "nav.dashboard"
	MsgNavAdmin       MessageKey = "nav.admin"
	MsgNavLogin       MessageKey = "nav.login"
	MsgNavRegister    MessageKey = "nav.register"
	MsgNavLogout      MessageKey = "nav.logout"
	MsgFooterTagline  MessageKey = "footer.tagline"
	MsgFooterLinks    MessageKey = "footer.links"
	MsgFooterHome     MessageKey = "footer.home"
	MsgFooterAbout    MessageKey = "footer.about"
	MsgFooterTerms    MessageKey = "footer.terms"
	MsgFooterPrivacy  MessageKey = "footer.privacy"
	MsgFooterContact  MessageKey = "footer.contact"
	MsgFooterEmail    MessageKey = "footer.email"
	MsgFooterHotline  MessageKey = "footer.hotline"
	MsgFooterAddress  MessageKey = "footer.address"
	MsgFooterRights   MessageKey = "footer.rights"

	MsgTitleDashboard MessageKey = "title.dashboard"
	MsgTitleLogin     MessageKey = "title.login"
	MsgTitleAdmin     MessageKey = "title.admin"
	MsgTitleNotFound  MessageKey = "title.not_found"
	MsgHistoryHeading MessageKey = "page.history_heading"
	MsgLoginEmail     MessageKey = "page.login_email"
	MsgLoginPassword  MessageKey = "page.login_password"
	MsgLoginSubmit    MessageKey = "page.login_submit"
	MsgAdminTotal     MessageKey = "page.admin_total"
	MsgNotFoundBody   MessageKey = "page.not_found_body"
	MsgPrevPage       MessageKey = "page.prev"
	MsgNextPage       MessageKey = "page.next"
	MsgPageOf         MessageKey = "page.page_of"

	MsgFlashUnauthorized   MessageKey = "flash.unauthorized"
	MsgFlashSessionExpired MessageKey = "flash.session_expired"
	MsgFlashLoginFailed    MessageKey = "flash.login_failed"
	MsgFlashPending        MessageKey = "flash.pending_activation"
	MsgFlashEmailTaken     MessageKey = "flash.email_taken"
	MsgFlashInvalidEmail   MessageKey = "flash.invalid_email"
	MsgFlashInvalidOTP     MessageKey = "flash.invalid_otp"
	MsgFlashWeakPassword   MessageKey = "flash.weak_password"

	MsgNoticeCodeSent      MessageKey = "notice.code_sent"
	MsgNoticeActivated     MessageKey = "notice.activated"
	MsgNoticePasswordReset MessageKey = "notice.password_reset"

	MsgTitleRegister      MessageKey = "title.register"
	MsgTitleVerifyOTP     MessageKey = "title.verify_otp"
	MsgTitleResetPassword MessageKey = "title.reset_password"
	MsgTitleAbout         MessageKey = "title.about"
	MsgTitleTerms         MessageKey = "title.terms"
	MsgTitlePrivacy       MessageKey = "title.privacy"

	MsgForgotLink       MessageKey = "page.forgot_link"
	MsgNoAccount        MessageKey = "page.no_account"
	MsgPasswordHint     MessageKey = "page.password_hint"
	MsgOTPLabel         MessageKey = "page.otp_label"
	MsgVerifyHeading    MessageKey = "page.verify_heading"
	MsgVerifyIntro      MessageKey = "page.verify_intro"
	MsgVerifySubmit     MessageKey = "page.verify_submit"
	MsgResetHeading     MessageKey = "page.reset_heading"
	MsgResetSendCode    MessageKey = "page.reset_send_code"
	MsgResetNewPassword MessageKey = "page.reset_new_password"
	MsgResetSubmit      MessageKey = "page.reset_submit"
	MsgAboutBody        MessageKey = "page.about_body"
	MsgTermsBody        MessageKey = "page.terms_body"
	MsgPrivacyBody      MessageKey = "page.privacy_body"
)

var translations = map[language.Tag]map[MessageKey]string{
	language.Vietnamese: {
		MsgNoText:       "Không có văn bản",
		MsgUnknownVoice: "Unknown",
		MsgListenedUpTo: "Đã nghe đến %s",
		MsgNotStarted:   "Chưa nghe",
		MsgRowHint:      "Click để xem chi tiết",
		MsgEmptyHistory: "Chưa có lịch sử hoạt động nào",
		MsgUnknownDate:  "Không rõ ngày",
		MsgColContent:   "Nội dung",
		MsgColVoice:     "Giọng đọc",
		MsgColCreated:   "Ngày tạo",

		MsgAppName:        "DocReader AI Studio",
		MsgAppDescription: "Chuyển đổi văn bản thành giọng nói với AI - DocReader AI Studio",
		MsgNavDashboard:   "Dashboard",
		MsgNavAdmin:       "Admin",
		MsgNavLogin:       "Đăng nhập",
		MsgNavRegister:    "Đăng ký",
		MsgNavLogout:      "Đăng xuất",
		MsgFooterTagline:  "Chuyển đổi văn bản thành giọng nói với công nghệ AI tiên tiến",
		MsgFooterLinks:    "Liên kết",
		MsgFooterHome:     "Trang chủ",
		MsgFooterAbout:    "Về chúng tôi",
		MsgFooterTerms:    "Điều khoản dịch vụ",
		MsgFooterPrivacy:  "Chính sách bảo mật",
		MsgFooterContact:  "Liên hệ",
		MsgFooterEmail:    "Email: support@docreader.com",
		MsgFooterHotline:  "Hotline: 1900 xxxx",
		MsgFooterAddress:  "Địa chỉ: Hà Nội, Việt Nam",
		MsgFooterRights:   "All rights reserved.",

		MsgTitleDashboard: "Dashboard - DocReader AI Studio",
		MsgTitleLogin:     "Đăng nhập - DocReader AI Studio",
		MsgTitleAdmin:     "Quản trị - DocReader AI Studio",
		MsgTitleNotFound:  "Không tìm thấy trang - DocReader AI Studio",
		MsgHistoryHeading: "Lịch sử hoạt động",
		MsgLoginEmail:     "Email",
		MsgLoginPassword:  "Mật khẩu",
		MsgLoginSubmit:    "Đăng nhập",
		MsgAdminTotal:     "Tổng số audio: %d",
		MsgNotFoundBody:   "Trang bạn tìm không tồn tại.",
		MsgPrevPage:       "Trước",
		MsgNextPage:       "Sau",
		MsgPageOf:         "Trang %d / %d",

		MsgFlashUnauthorized:   "Bạn không có quyền truy cập trang này",
		MsgFlashSessionExpired: "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại",
		MsgFlashLoginFailed:    "Email hoặc mật khẩu không đúng",
		MsgFlashPending:        "Tài khoản chưa được kích hoạt. Vui lòng kiểm tra email để xác thực OTP.",
		MsgFlashEmailTaken:     "Email đã được sử dụng",
		MsgFlashInvalidEmail:   "Email không hợp lệ",
		MsgFlashInvalidOTP:     "OTP không đúng hoặc đã hết hạn",
		MsgFlashWeakPassword:   "Mật khẩu phải có ít nhất 6 ký tự",

		MsgNoticeCodeSent:      "OTP đã được gửi đến email của bạn",
		MsgNoticeActivated:     "Tài khoản đã được kích hoạt thành công",
		MsgNoticePasswordReset: "Mật khẩu đã được đặt lại, vui lòng đăng nhập",

		MsgTitleRegister:      "Đăng ký - DocReader AI Studio",
		MsgTitleVerifyOTP:     "Xác thực OTP - DocReader AI Studio",
		MsgTitleResetPassword: "Đặt lại mật khẩu - DocReader AI Studio",
		MsgTitleAbout:         "Về chúng tôi - DocReader AI Studio",
		MsgTitleTerms:         "Điều khoản dịch vụ - DocReader AI Studio",
		MsgTitlePrivacy:       "Chính sách bảo mật - DocReader AI Studio",

		MsgForgotLink:       "Quên mật khẩu?",
		MsgNoAccount:        "Chưa có tài khoản?",
		MsgPasswordHint:     "Ít nhất 6 ký tự",
		MsgOTPLabel:         "Mã OTP",
		MsgVerifyHeading:    "Xác thực tài khoản",
		MsgVerifyIntro:      "Nhập mã OTP đã được gửi đến email của bạn",
		MsgVerifySubmit:     "Xác thực",
		MsgResetHeading:     "Đặt lại mật khẩu",
		MsgResetSendCode:    "Gửi mã OTP",
		MsgResetNewPassword: "Mật khẩu mới",
		MsgResetSubmit:      "Đặt lại mật khẩu",
		MsgAboutBody:        "DocReader AI Studio - Giải pháp chuyển đổi văn bản thành giọng nói. Chúng tôi giúp bạn nghe tài liệu mọi lúc, mọi nơi.",
		MsgTermsBody:        "Khi sử dụng DocReader AI Studio, bạn đồng ý với các điều khoản dịch vụ. Bạn chịu trách nhiệm về nội dung mình tải lên và bảo mật tài khoản của mình.",
		MsgPrivacyBody:      "Chúng tôi chỉ thu thập thông tin cần thiết để cung cấp dịch vụ và không chia sẻ thông tin cá nhân của bạn với bên thứ ba.",
	},
	language.English: {
		MsgNoText:       "No text available",
		MsgUnknownVoice: "Unknown",
		MsgListenedUpTo: "Listened up to %s",
		MsgNotStarted:   "Not started",
		MsgRowHint:      "Click to view details",
		MsgEmptyHistory: "No activity history yet",
		MsgUnknownDate:  "Unknown date",
		MsgColContent:   "Content",
		MsgColVoice:     "Voice",
		MsgColCreated:   "Created",

		MsgAppName:        "DocReader AI Studio",
		MsgAppDescription: "Text to speech with AI - DocReader AI Studio",
		MsgNavDashboard:   "Dashboard",
		MsgNavAdmin:       "Admin",
		MsgNavLogin:       "Log in",
		MsgNavRegister:    "Sign up",
		MsgNavLogout:      "Log out",
		MsgFooterTagline:  "Turn text into speech with modern AI",
		MsgFooterLinks:    "Links",
		MsgFooterHome:     "Home",
		MsgFooterAbout:    "About us",
		MsgFooterTerms:    "Terms of service",
		MsgFooterPrivacy:  "Privacy policy",
		MsgFooterContact:  "Contact",
		MsgFooterEmail:    "Email: support@docreader.com",
		MsgFooterHotline:  "Hotline: 1900 xxxx",
		MsgFooterAddress:  "Address: Hanoi, Vietnam",
		MsgFooterRights:   "All rights reserved.",

		MsgTitleDashboard: "Dashboard - DocReader AI Studio",
		MsgTitleLogin:     "Log in - DocReader AI Studio",
		MsgTitleAdmin:     "Admin - DocReader AI Studio",
		MsgTitleNotFound:  "Page not found - DocReader AI Studio",
		MsgHistoryHeading: "Activity history",
		MsgLoginEmail:     "Email",
		MsgLoginPassword:  "Password",
		MsgLoginSubmit:    "Log in",
		MsgAdminTotal:     "Total audio: %d",
		MsgNotFoundBody:   "The page you are looking for does not exist.",
		MsgPrevPage:       "Previous",
		MsgNextPage:       "Next",
		MsgPageOf:         "Page %d / %d",

		MsgFlashUnauthorized:   "You do not have access to that page",
		MsgFlashSessionExpired: "Your session has expired, please log in again",
		MsgFlashLoginFailed:    "Wrong email or password",
		MsgFlashPending:        "Your account is not activated yet. Check your email for the code.",
		MsgFlashEmailTaken:     "This email is already registered",
		MsgFlashInvalidEmail:   "Invalid email address",
		MsgFlashInvalidOTP:     "The code is wrong or has expired",
		MsgFlashWeakPassword:   "Passwords need at least 6 characters",

		MsgNoticeCodeSent:      "A code has been sent to your email",
		MsgNoticeActivated:     "Your account is active",
		MsgNoticePasswordReset: "Your password has been reset, please log in",

		MsgTitleRegister:      "Sign up - DocReader AI Studio",
		MsgTitleVerifyOTP:     "Verify code - DocReader AI Studio",
		MsgTitleResetPassword: "Reset password - DocReader AI Studio",
		MsgTitleAbout:         "About us - DocReader AI Studio",
		MsgTitleTerms:         "Terms of service - DocReader AI Studio",
		MsgTitlePrivacy:       "Privacy policy - DocReader AI Studio",

		MsgForgotLink:       "Forgot password?",
		MsgNoAccount:        "No account yet?",
		MsgPasswordHint:     "At least 6 characters",
		MsgOTPLabel:         "Code",
		MsgVerifyHeading:    "Verify your account",
		MsgVerifyIntro:      "Enter the code we sent to your email",
		MsgVerifySubmit:     "Verify",
		MsgResetHeading:     "Reset password",
		MsgResetSendCode:    "Send code",
		MsgResetNewPassword: "New password",
		MsgResetSubmit:      "Reset password",
		MsgAboutBody:        "DocReader AI Studio turns text into speech so you can listen to your documents anywhere.",
		MsgTermsBody:        "By using DocReader AI Studio you accept these terms. You are responsible for the content you upload and for keeping your account secure.",
		MsgPrivacyBody:      "We collect only what is needed to run the service and never share your personal data with third parties.",
	},
}

// DefaultLanguage serves pages and fills gaps in other catalogs.
var DefaultLanguage = language.Vietnamese

var messages = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(DefaultLanguage))
	for tag, table := range translations {
		for key, msg := range table {
			if err := b.SetString(tag, string(key), msg); err != nil {
				panic("view: bad message " + string(key) + ": " + err.Error())
			}
		}
	}
	return b
}

// Localizer resolves message keys for one language. Safe for concurrent use.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

func NewLocalizer(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

func (l *Localizer) T(key MessageKey, args ...any) string {
	return l.printer.Sprintf(string(key), args...)
}

// Lang is the BCP 47 tag used for the html lang attribute.
func (l *Localizer) Lang() string {
	base, _ := l.tag.Base()
	return base.String()
}
