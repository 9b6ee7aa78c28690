package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// PageData carries the fields every page hands to the base layout.
type PageData struct {
	Title  string
	Styles templ.Component
}

// Base wraps a page body in the shared document shell.
func Base(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0, minimum-scale=1.0, maximum-scale=1.0, user-scalable=no">
<link rel="icon" type="image/png" href="/icons/icon-256x256.png">
<link rel="manifest" href="/manifest.json">
<meta name="mobile-web-app-capable" content="yes">
<meta name="apple-mobile-web-app-capable" content="yes">
<title>%s</title>
`, templ.EscapeString(data.Title)); err != nil {
			return err
		}
		if data.Styles != nil {
			if err := data.Styles.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</head>\n<body>\n"); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n</body>\n</html>\n")
		return err
	})
}

// Styles wraps raw CSS in a style tag component.
func Styles(css string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<style>%s</style>\n", css)
		return err
	})
}
