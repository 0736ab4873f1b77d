package recipe

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"blockpatch/pkg/block"
)

// StdinName is the payload file name that reads from standard input.
const StdinName = "-"

// LoadPayload returns the payload of p. File paths resolve against
// baseDir; stdin is read when payload_file is "-".
func (p *Patch) LoadPayload(baseDir string, stdin io.Reader) (block.Payload, error) {
	if p.Payload != nil {
		return block.Payload(*p.Payload), nil
	}
	path := p.PayloadFile
	if path != StdinName {
		path = resolvePath(baseDir, path)
	}
	return ReadPayload(path, p.Block, stdin)
}

// ReadPayload reads a payload from path, or from stdin when path is "-".
// When blockName is set the file is read as Markdown and the payload is
// the content of the fenced code block carrying that name.
func ReadPayload(path, blockName string, stdin io.Reader) (block.Payload, error) {
	var (
		data []byte
		err  error
	)
	if path == StdinName {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	if blockName == "" {
		return block.Payload(data), nil
	}
	content, err := ExtractCodeBlock(data, blockName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return block.Payload(content), nil
}

// ExtractCodeBlock returns the verbatim content of the fenced code block
// named name in a Markdown document. A block is named by the last word of
// its info string, so both ```quest-card and ```dart quest-card match
// "quest-card".
func ExtractCodeBlock(source []byte, name string) ([]byte, error) {
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var found []*ast.FencedCodeBlock
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		fields := strings.Fields(string(fcb.Info.Segment.Value(source)))
		if len(fields) > 0 && fields[len(fields)-1] == name {
			found = append(found, fcb)
		}
		return ast.WalkSkipChildren, nil
	})

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("no code block named %q", name)
	case 1:
	default:
		return nil, fmt.Errorf("%d code blocks named %q", len(found), name)
	}

	var buf bytes.Buffer
	lines := found[0].Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.WriteString(strings.Repeat(" ", seg.Padding))
		buf.Write(seg.Value(source))
	}
	return buf.Bytes(), nil
}
