package client

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// PdftotextClient shells out to poppler's pdftotext, which copes with
// font encodings the pure Go reader cannot decode.
type PdftotextClient struct {
	path string
}

// NewPdftotextClient uses the binary at path, or "pdftotext" from PATH.
func NewPdftotextClient(path string) *PdftotextClient {
	if path == "" {
		path = "pdftotext"
	}
	return &PdftotextClient{path: path}
}

// Available reports whether the binary can be found.
func (c *PdftotextClient) Available() bool {
	_, err := exec.LookPath(c.path)
	return err == nil
}

// ExtractText returns the layout-preserving text of a PDF on disk. Pages are
// separated by form feeds.
func (c *PdftotextClient) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	cmd := exec.CommandContext(ctx, c.path, "-layout", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
