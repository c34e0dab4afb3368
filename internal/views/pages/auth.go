package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"alerscan/internal/views/components"
)

// LoginData populates the sign-in form.
type LoginData struct {
	Username string
	Notice   components.Notice
}

// Login renders the sign-in form.
func Login(data LoginData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<section class="mx-auto max-w-sm space-y-4" data-page="login">`)
		hw.Raw(`<h1 class="text-2xl font-semibold">Log in</h1>`)
		hw.Component(ctx, components.NoticeBanner(data.Notice))
		hw.Raw(`<form method="post" action="/login" hx-post="/login" hx-target="#main" class="space-y-3">`)
		usernameField(hw, data.Username)
		passwordField(hw, "password", "Password", "current-password")
		hw.Raw(`<button type="submit" class="w-full rounded-md bg-stone-900 px-4 py-2 text-white">Log in</button>`)
		hw.Raw(`</form>`)
		hw.Raw(`<p class="text-sm">No account yet? <a href="/register" class="underline">Register</a></p>`)
		hw.Raw(`</section>`)
		return hw.Err()
	})
}

// RegisterData populates the account creation form.
type RegisterData struct {
	Username string
	Notice   components.Notice
}

// Register renders the account creation form.
func Register(data RegisterData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<section class="mx-auto max-w-sm space-y-4" data-page="register">`)
		hw.Raw(`<h1 class="text-2xl font-semibold">Create an account</h1>`)
		hw.Component(ctx, components.NoticeBanner(data.Notice))
		hw.Raw(`<form method="post" action="/register" hx-post="/register" hx-target="#main" class="space-y-3">`)
		usernameField(hw, data.Username)
		passwordField(hw, "password", "Password", "new-password")
		passwordField(hw, "confirm_password", "Confirm password", "new-password")
		hw.Raw(`<button type="submit" class="w-full rounded-md bg-stone-900 px-4 py-2 text-white">Register</button>`)
		hw.Raw(`</form>`)
		hw.Raw(`<p class="text-sm">Already registered? <a href="/login" class="underline">Log in</a></p>`)
		hw.Raw(`</section>`)
		return hw.Err()
	})
}

func usernameField(hw *components.Writer, value string) {
	hw.Raw(`<label class="flex flex-col gap-1 text-sm">Username`)
	hw.Rawf(`<input type="text" name="username" value="%s" required autocomplete="username" class="rounded-md border px-2 py-1">`,
		templ.EscapeString(value))
	hw.Raw(`</label>`)
}

func passwordField(hw *components.Writer, name, label, autocomplete string) {
	hw.Raw(`<label class="flex flex-col gap-1 text-sm">`)
	hw.Text(label)
	hw.Rawf(`<input type="password" name="%s" required autocomplete="%s" class="rounded-md border px-2 py-1">`, name, autocomplete)
	hw.Raw(`</label>`)
}
