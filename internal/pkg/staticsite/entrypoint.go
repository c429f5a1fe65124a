package staticsite

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const placeholderPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Empty site</title>
</head>
<body>
<p>No HTML content was found in this upload.</p>
</body>
</html>
`

// EnsureEntryPoint guarantees dir contains a browsable index.html.
// If one already exists this is a no-op. Otherwise the first top-level
// *.html file (directory-listing order, case-insensitive) gets a redirect
// stub; with no HTML files at all a placeholder page is written.
// Runs after a successful extraction and never fails the upload: errors are
// logged and swallowed. Idempotent.
func EnsureEntryPoint(dir string) {
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err == nil {
		return
	}

	content := placeholderPage
	if target := firstHTMLFile(dir); target != "" {
		content = redirectStub(target)
	}

	if err := os.WriteFile(index, []byte(content), 0o644); err != nil {
		log.Printf("entrypoint: write %s failed: %v", index, err)
	}
}

func firstHTMLFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("entrypoint: read %s failed: %v", dir, err)
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".html") {
			return e.Name()
		}
	}
	return ""
}

// redirectStub points the browser at target both via meta refresh and
// script, for clients with either disabled.
func redirectStub(target string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="0; url=./%[1]s">
<script>window.location.replace("./%[1]s");</script>
<title>Redirecting</title>
</head>
<body>
<p>Redirecting to <a href="./%[1]s">%[1]s</a>...</p>
</body>
</html>
`, target)
}
