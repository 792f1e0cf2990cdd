package report

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// RenderHTML renders the report page into a string.
func RenderHTML(data Data) (string, error) {
	var builder strings.Builder
	if err := Page(data).Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteFile renders the report and writes it to path.
func WriteFile(path string, data Data) error {
	html, err := RenderHTML(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
