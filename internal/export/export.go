package export

import (
	"errors"
	"strings"

	"github.com/codebuildervaibhav/segment-scripter/internal/types"
)

// ErrUnsupportedFormat is returned for any format other than txt or md
var ErrUnsupportedFormat = errors.New("unsupported export format")

// File is a rendered transcript ready to be sent as a download
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Render formats segments as plain text or markdown. Transcript text is
// emitted verbatim in both layouts.
func Render(segments []types.TranscriptSegment, format string) (string, error) {
	switch format {
	case types.FormatText:
		var b strings.Builder
		for _, s := range segments {
			b.WriteString("Section: ")
			b.WriteString(s.Range)
			b.WriteString("\n\n")
			b.WriteString(s.Text)
			b.WriteString("\n\n---\n")
		}
		return b.String(), nil
	case types.FormatMarkdown:
		blocks := make([]string, len(segments))
		for i, s := range segments {
			blocks[i] = "## Section: " + s.Range + "\n\n" + s.Text + "\n"
		}
		return strings.Join(blocks, "\n---\n\n"), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Build renders segments into a downloadable file with a fixed name
func Build(segments []types.TranscriptSegment, format string) (*File, error) {
	content, err := Render(segments, format)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        "transcript." + format,
		ContentType: ContentType(format),
		Body:        []byte(content),
	}, nil
}

// ContentType returns the MIME type for an export format
func ContentType(format string) string {
	if format == types.FormatMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Supported reports whether format can be rendered
func Supported(format string) bool {
	return format == types.FormatText || format == types.FormatMarkdown
}
