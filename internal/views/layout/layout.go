package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"alerscan/internal/views/components"
)

const htmxScript = "https://unpkg.com/htmx.org@1.9.12"

// Shell carries what the page chrome needs to know about the request.
type Shell struct {
	Title    string
	Path     string
	Username string
}

func (s Shell) authenticated() bool {
	return s.Username != ""
}

func documentTitle(title string) string {
	if title == "" {
		return "Alerscan"
	}
	return title + " · Alerscan"
}

// Layout wraps content in the full HTML document. HTMX swaps target #main.
func Layout(shell Shell, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.Raw(`<title>`)
		hw.Text(documentTitle(shell.Title))
		hw.Raw(`</title>`)
		hw.Rawf(`<script src="%s" defer></script>`, htmxScript)
		hw.Raw(`</head><body class="min-h-screen bg-stone-50 text-stone-900">`)
		hw.Component(ctx, header(shell))
		hw.Raw(`<main id="main" class="mx-auto max-w-3xl px-4 py-8">`)
		hw.Component(ctx, content)
		hw.Raw(`</main></body></html>`)
		return hw.Err()
	})
}

func header(shell Shell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<header class="border-b bg-white"><nav class="mx-auto flex max-w-3xl items-center gap-2 px-4 py-3">`)
		hw.Raw(`<span class="mr-auto font-semibold">Alerscan</span>`)
		if shell.authenticated() {
			hw.Component(ctx, components.NavLink("Scan", "/escanear", shell.Path))
			hw.Component(ctx, components.NavLink("Register product", "/registrar", shell.Path))
			hw.Raw(`<span class="px-3 text-sm text-stone-500" data-user>`)
			hw.Text(shell.Username)
			hw.Raw(`</span>`)
			hw.Component(ctx, components.NavLink("Log out", "/logout", shell.Path))
		} else {
			hw.Component(ctx, components.NavLink("Log in", "/login", shell.Path))
			hw.Component(ctx, components.NavLink("Register", "/register", shell.Path))
		}
		hw.Raw(`</nav></header>`)
		return hw.Err()
	})
}
