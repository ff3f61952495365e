package view

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/Vovarama1992/docreader/internal/models"
)

type Page string

const (
	PageDashboard Page = "dashboard"
	PageLogin     Page = "login"
	PageAdmin     Page = "admin"
	PageNotFound  Page = "not_found"

	PageRegister      Page = "register"
	PageVerifyOTP     Page = "verify_otp"
	PageResetPassword Page = "reset_password"
	PageAbout         Page = "about"
	PageTerms         Page = "terms"
	PagePrivacy       Page = "privacy"
)

type PageData struct {
	Title   string
	Session *models.Session
	Flash   string
	Notice  string
	Body    any
}

type DashboardBody struct {
	Table   template.HTML // produced by HistoryRenderer
	Page    int
	Pages   int
	PrevURL string
	NextURL string
}

type LoginBody struct {
	Redirect string
}

// OTPBody carries the address a code was sent to. CodeSent switches the reset
// page from requesting a code to entering it.
type OTPBody struct {
	Email    string
	CodeSent bool
}

type StaticBody struct {
	Heading string
	Text    string
}

type AdminBody struct {
	TotalAudio int
}

type layoutView struct {
	PageData
	Lang    string
	Year    int
	Version string
}

// Layout renders full documents: head, navigation, page body and footer.
type Layout struct {
	pages   map[Page]*template.Template
	loc     *Localizer
	version string
	now     func() time.Time
}

// NewLayout parses every page against the shared shell. version is appended
// to script URLs to bust caches between deploys.
func NewLayout(urls *URLBuilder, loc *Localizer, version string) *Layout {
	funcs := template.FuncMap{
		"t": func(key string, args ...any) string {
			return loc.T(MessageKey(key), args...)
		},
		"url": urls.URL,
		"asset": func(path string) string {
			return urls.Asset(path) + "?v=" + version
		},
	}

	shell := template.Must(template.New("shell").Funcs(funcs).Parse(shellTemplates))

	pages := make(map[Page]*template.Template, len(pageTemplates))
	for page, body := range pageTemplates {
		t := template.Must(shell.Clone())
		template.Must(t.Parse(body))
		pages[page] = t
	}

	return &Layout{
		pages:   pages,
		loc:     loc,
		version: version,
		now:     time.Now,
	}
}

func (l *Layout) Localizer() *Localizer { return l.loc }

func (l *Layout) Render(w io.Writer, page Page, data PageData) error {
	t, ok := l.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if data.Title == "" {
		data.Title = l.loc.T(MsgAppName)
	}

	return t.ExecuteTemplate(w, "page", layoutView{
		PageData: data,
		Lang:     l.loc.Lang(),
		Year:     l.now().Year(),
		Version:  l.version,
	})
}

const shellTemplates = `
{{- define "page" -}}
<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="X-UA-Compatible" content="IE=edge">
    <title>{{.Title}}</title>
    <meta name="description" content="{{t "app.description"}}">
    <link rel="icon" type="image/png" href="{{url "/assets/images/vie.png"}}">
    <script src="https://cdn.tailwindcss.com"></script>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/toastify-js/src/toastify.min.css">
    <style>
        .gradient-bg { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); }
    </style>
</head>
<body class="bg-gray-50 min-h-screen flex flex-col">
{{template "nav" .}}
    <main class="flex-grow">
{{- if .Flash}}
        <div class="container mx-auto px-4 mt-4"><div class="bg-red-100 text-red-700 px-4 py-3 rounded" role="alert">{{.Flash}}</div></div>
{{- end}}
{{- if .Notice}}
        <div class="container mx-auto px-4 mt-4"><div class="bg-green-100 text-green-700 px-4 py-3 rounded" role="status">{{.Notice}}</div></div>
{{- end}}
{{template "content" .}}
    </main>
{{template "footer" .}}
    <script src="https://cdn.jsdelivr.net/npm/toastify-js"></script>
    <script src="{{asset "/assets/js/app.js"}}"></script>
    <script src="{{asset "/assets/js/audio-position-tracker.js"}}"></script>
    <script src="{{asset "/assets/js/dashboard.js"}}"></script>
    <script>
        document.getElementById('mobile-menu-btn')?.addEventListener('click', function() {
            document.getElementById('mobile-menu').classList.toggle('hidden');
        });
    </script>
</body>
</html>
{{- end -}}

{{- define "nav_links" -}}
{{- if .Session}}
<span class="text-white text-sm" data-nav="user">👤 {{.Session.Email}}</span>
<a href="{{url "/dashboard"}}" class="text-white hover:text-gray-200 transition">{{t "nav.dashboard"}}</a>
{{- if .Session.IsAdmin}}
<a href="{{url "/admin"}}" class="text-white hover:text-gray-200 transition" data-nav="admin">{{t "nav.admin"}}</a>
{{- end}}
<form method="post" action="{{url "/api/logout"}}">
<button type="submit" class="bg-white text-purple-600 px-4 py-2 rounded-lg hover:bg-gray-100 transition font-medium">{{t "nav.logout"}}</button>
</form>
{{- else}}
<a href="{{url "/login"}}" class="text-white hover:text-gray-200 transition">{{t "nav.login"}}</a>
<a href="{{url "/register"}}" class="bg-white text-purple-600 px-6 py-2 rounded-lg hover:bg-gray-100 transition font-medium">{{t "nav.register"}}</a>
{{- end}}
{{- end -}}

{{- define "nav" -}}
    <nav class="gradient-bg shadow-lg">
        <div class="container mx-auto px-4">
            <div class="flex justify-between items-center py-4">
                <a href="{{url "/"}}" class="flex items-center space-x-2">
                    <div class="text-white text-2xl font-bold">🎙️ {{t "app.name"}}</div>
                </a>
                <div class="hidden md:flex items-center space-x-6">{{template "nav_links" .}}</div>
                <button id="mobile-menu-btn" class="md:hidden text-white" type="button">
                    <svg class="w-6 h-6" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M4 6h16M4 12h16M4 18h16"></path></svg>
                </button>
            </div>
            <div id="mobile-menu" class="hidden md:hidden pb-4">
                <div class="flex flex-col space-y-2">{{template "nav_links" .}}</div>
            </div>
        </div>
    </nav>
{{- end -}}

{{- define "footer" -}}
    <footer class="bg-gray-800 text-white py-8 mt-auto">
        <div class="container mx-auto px-4">
            <div class="grid grid-cols-1 md:grid-cols-3 gap-8">
                <div>
                    <h3 class="text-xl font-bold mb-4">{{t "app.name"}}</h3>
                    <p class="text-gray-400">{{t "footer.tagline"}}</p>
                </div>
                <div>
                    <h3 class="text-xl font-bold mb-4">{{t "footer.links"}}</h3>
                    <ul class="space-y-2">
                        <li><a href="{{url "/"}}" class="text-gray-400 hover:text-white transition">{{t "footer.home"}}</a></li>
                        <li><a href="{{url "/dashboard"}}" class="text-gray-400 hover:text-white transition">{{t "nav.dashboard"}}</a></li>
                        <li><a href="{{url "/about"}}" class="text-gray-400 hover:text-white transition">{{t "footer.about"}}</a></li>
                        <li><a href="{{url "/terms"}}" class="text-gray-400 hover:text-white transition">{{t "footer.terms"}}</a></li>
                        <li><a href="{{url "/privacy"}}" class="text-gray-400 hover:text-white transition">{{t "footer.privacy"}}</a></li>
                    </ul>
                </div>
                <div>
                    <h3 class="text-xl font-bold mb-4">{{t "footer.contact"}}</h3>
                    <ul class="space-y-2 text-gray-400">
                        <li>📧 {{t "footer.email"}}</li>
                        <li>📱 {{t "footer.hotline"}}</li>
                        <li>🏢 {{t "footer.address"}}</li>
                    </ul>
                </div>
            </div>
            <div class="text-center mt-8 pt-8 border-t border-gray-700">
                <p class="text-gray-400">&copy; {{.Year}} {{t "app.name"}}. {{t "footer.rights"}}</p>
            </div>
        </div>
    </footer>
{{- end -}}
`

var pageTemplates = map[Page]string{
	PageDashboard: `{{define "content"}}
<div class="container mx-auto px-4 py-8">
    <h2 class="text-2xl font-bold mb-6">{{t "page.history_heading"}}</h2>
    <div id="history-table-view" class="overflow-x-auto">
        <table class="w-full border-collapse">
            <thead class="bg-gray-50">
                <tr>
                    <th class="px-4 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">{{t "history.col_content"}}</th>
                    <th class="px-4 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">{{t "history.col_voice"}}</th>
                    <th class="px-4 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">{{t "history.col_created"}}</th>
                </tr>
            </thead>
            <tbody id="activity-table-body" class="bg-white divide-y divide-gray-200">{{.Body.Table}}</tbody>
        </table>
    </div>
    {{- if gt .Body.Pages 1}}
    <div id="history-pagination" class="mt-6 flex justify-center items-center gap-4 text-sm">
        {{- if .Body.PrevURL}}<a href="{{.Body.PrevURL}}" class="text-purple-600">{{t "page.prev"}}</a>{{end}}
        <span>{{t "page.page_of" .Body.Page .Body.Pages}}</span>
        {{- if .Body.NextURL}}<a href="{{.Body.NextURL}}" class="text-purple-600">{{t "page.next"}}</a>{{end}}
    </div>
    {{- end}}
</div>
{{end}}`,

	PageLogin: `{{define "content"}}
<div class="container mx-auto px-4 py-12 max-w-md">
    <h2 class="text-2xl font-bold mb-6">{{t "nav.login"}}</h2>
    <form method="post" action="{{url "/api/login"}}" class="space-y-4 bg-white p-6 rounded-xl shadow">
        <input type="hidden" name="redirect" value="{{.Body.Redirect}}">
        <label class="block">
            <span class="text-sm text-gray-700">{{t "page.login_email"}}</span>
            <input type="email" name="email" required class="mt-1 w-full border rounded-lg px-3 py-2">
        </label>
        <label class="block">
            <span class="text-sm text-gray-700">{{t "page.login_password"}}</span>
            <input type="password" name="password" required class="mt-1 w-full border rounded-lg px-3 py-2">
        </label>
        <div class="text-right text-sm">
            <a href="{{url "/reset-password"}}" class="text-purple-600 hover:underline" data-link="forgot">{{t "page.forgot_link"}}</a>
        </div>
        <button type="submit" class="w-full gradient-bg text-white py-2 rounded-lg font-medium">{{t "page.login_submit"}}</button>
    </form>
    <p class="text-center text-sm text-gray-600 mt-4">{{t "page.no_account"}} <a href="{{url "/register"}}" class="text-purple-600 hover:underline">{{t "nav.register"}}</a></p>
</div>
{{end}}`,

	PageRegister: `{{define "content"}}
<div class="container mx-auto px-4 py-12 max-w-md">
    <h2 class="text-2xl font-bold mb-6">{{t "nav.register"}}</h2>
    <form method="post" action="{{url "/api/auth/register"}}" class="space-y-4 bg-white p-6 rounded-xl shadow">
        <label class="block">
            <span class="text-sm text-gray-700">{{t "page.login_email"}}</span>
            <input type="email" name="email" required class="mt-1 w-full border rounded-lg px-3 py-2">
        </label>
        <label class="block">
            <span class="text-sm text-gray-700">{{t "page.login_password"}}</span>
            <input type="password" name="password" required minlength="6" class="mt-1 w-full border rounded-lg px-3 py-2">
            <span class="text-xs text-gray-500">{{t "page.password_hint"}}</span>
        </label>
        <button type="submit" class="w-full gradient-bg text-white py-2 rounded-lg font-medium">{{t "nav.register"}}</button>
    </form>
    <p class="text-center text-sm text-gray-600 mt-4"><a href="{{url "/login"}}" class="text-purple-600 hover:underline">{{t "nav.login"}}</a></p>
</div>
{{end}}`,

	PageVerifyOTP: `{{define "content"}}
<div class="container mx-auto px-4 py-12 max-w-md">
    <h2 class="text-2xl font-bold mb-2">{{t "page.verify_heading"}}</h2>
    <p class="text-gray-600 mb-6">{{t "page.verify_intro"}}</p>
    <form method="post" action="{{url "/api/auth/verify-otp"}}" class="space-y-4 bg-white p-6 rounded-xl shadow">
        <label class="block">
            <span class="text-sm text-gray-700">{{t "page.login_email"}}</span>
            <input type="email" name="email" value="{{.Body.Email}}" required class="mt-1 w-full border rounded-lg px-3 py-2">
        </label>
        <label class="block">
            <span class="text-sm text-gray-700">{{t "page.otp_label"}}</span>
            <input type="text" name="otp" inputmode="numeric" maxlength="6" required class="mt-1 w-full border rounded-lg px-3 py-2 tracking-widest">
        </label>
        <button type="submit" class="w-full gradient-bg text-white py-2 rounded-lg font-medium">{{t "page.verify_submit"}}</button>
    </form>
</div>
{{end}}`,

	PageResetPassword: `{{define "content"}}
<div class="container mx-auto px-4 py-12 max-w-md">
    <h2 class="text-2xl font-bold mb-6">{{t "page.reset_heading"}}</h2>
    {{- if .Body.CodeSent}}
    <form method="post" action="{{url "/api/auth/reset-password"}}" class="space-y-4 bg-white p-6 rounded-xl shadow" data-step="reset">
        <input type="hidden" name="email" value="{{.Body.Email}}">
        <label class="block">
            <span class="text-sm text-gray-700">{{t "page.otp_label"}}</span>
            <input type="text" name="otp" inputmode="numeric" maxlength="6" required class="mt-1 w-full border rounded-lg px-3 py-2 tracking-widest">
        </label>
        <label class="block">
            <span class="text-sm text-gray-700">{{t "page.reset_new_password"}}</span>
            <input type="password" name="password" required minlength="6" class="mt-1 w-full border rounded-lg px-3 py-2">
            <span class="text-xs text-gray-500">{{t "page.password_hint"}}</span>
        </label>
        <button type="submit" class="w-full gradient-bg text-white py-2 rounded-lg font-medium">{{t "page.reset_submit"}}</button>
    </form>
    {{- else}}
    <form method="post" action="{{url "/api/auth/forgot-password"}}" class="space-y-4 bg-white p-6 rounded-xl shadow" data-step="request">
        <label class="block">
            <span class="text-sm text-gray-700">{{t "page.login_email"}}</span>
            <input type="email" name="email" value="{{.Body.Email}}" required class="mt-1 w-full border rounded-lg px-3 py-2">
        </label>
        <button type="submit" class="w-full gradient-bg text-white py-2 rounded-lg font-medium">{{t "page.reset_send_code"}}</button>
    </form>
    {{- end}}
    <p class="text-center text-sm text-gray-600 mt-4"><a href="{{url "/login"}}" class="text-purple-600 hover:underline">{{t "nav.login"}}</a></p>
</div>
{{end}}`,

	PageAbout:   staticContent,
	PageTerms:   staticContent,
	PagePrivacy: staticContent,

	PageAdmin: `{{define "content"}}
<div class="container mx-auto px-4 py-8">
    <h2 class="text-2xl font-bold mb-6">{{t "nav.admin"}}</h2>
    <div class="bg-white rounded-xl shadow p-6">
        <p class="text-lg" data-stat="total-audio">{{t "page.admin_total" .Body.TotalAudio}}</p>
    </div>
</div>
{{end}}`,

	PageNotFound: `{{define "content"}}
<div class="container mx-auto px-4 py-16 text-center">
    <div class="text-6xl font-bold text-gray-300 mb-4">404</div>
    <p class="text-gray-600">{{t "page.not_found_body"}}</p>
    <a href="{{url "/"}}" class="text-purple-600 mt-4 inline-block">{{t "footer.home"}}</a>
</div>
{{end}}`,
}

const staticContent = `{{define "content"}}
<div class="container mx-auto px-4 py-12 max-w-3xl">
    <h1 class="text-3xl font-bold mb-6">{{.Body.Heading}}</h1>
    <div class="bg-white rounded-xl shadow p-6 text-gray-700 leading-relaxed">
        <p>{{.Body.Text}}</p>
    </div>
</div>
{{end}}`
