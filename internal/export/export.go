package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gopkg.in/yaml.v3"

	"github.com/Dasen603/typeset/internal/store"
)

// Frontmatter is written at the head of every exported document.
type Frontmatter struct {
	Title     string `yaml:"title"`
	CreatedAt string `yaml:"created"`
	UpdatedAt string `yaml:"updated"`
	Nodes     int    `yaml:"nodes"`
}

// RenderMarkdown flattens a document and its outline into a single
// markdown file body. Section titles become headings whose level follows
// the node's indent, equations are fenced, and figures become image
// links.
func RenderMarkdown(doc store.Document, nodes []store.Node, contents map[int64]string) string {
	var b strings.Builder

	fm := Frontmatter{
		Title:     doc.Title,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		Nodes:     len(nodes),
	}

	meta, err := yaml.Marshal(fm)
	if err == nil {
		b.WriteString("---\n")
		b.Write(meta)
		b.WriteString("---\n\n")
	}

	b.WriteString("# " + doc.Title + "\n")

	for _, n := range nodes {
		b.WriteString("\n")
		switch n.NodeType {
		case store.NodeTypeEquation:
			b.WriteString("```math\n")
			if body := contents[n.ID]; body != "" {
				b.WriteString(strings.TrimRight(body, "\n") + "\n")
			}
			b.WriteString("```\n")
		case store.NodeTypeFigure:
			url := ""
			if n.ImageURL != nil {
				url = *n.ImageURL
			}
			b.WriteString(fmt.Sprintf("![%s](%s)\n", n.Title, url))
		default:
			level := int(n.IndentLevel) + 2
			if level > 6 {
				level = 6
			}
			b.WriteString(strings.Repeat("#", level) + " " + n.Title + "\n")
			if body := contents[n.ID]; body != "" {
				b.WriteString("\n" + strings.TrimRight(body, "\n") + "\n")
			}
		}
	}

	return b.String()
}

// Export renders the document with the given id into exportDir and
// returns the written file path.
func Export(ctx context.Context, s *store.Store, documentID int64, exportDir string) (string, error) {
	doc, err := s.GetDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	nodes, err := s.ListNodes(ctx, documentID)
	if err != nil {
		return "", err
	}

	contents := make(map[int64]string, len(nodes))
	for _, n := range nodes {
		c, err := s.GetContent(ctx, n.ID)
		if err != nil {
			if store.IsNotFound(err) {
				continue
			}
			return "", err
		}
		contents[n.ID] = c.ContentJSON
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(exportDir, slugify(doc.Title)+".md")
	body := RenderMarkdown(doc, nodes, contents)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", err
	}

	return path, nil
}

// Commit stages everything under exportDir and records a commit,
// initializing the repository on first use. Returns without error when
// the tree is already clean.
func Commit(exportDir, message string) error {
	repo, err := git.PlainOpen(exportDir)
	if err == git.ErrRepositoryNotExists {
		repo, err = git.PlainInit(exportDir, false)
	}
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}

	if _, err = worktree.Add("."); err != nil {
		return err
	}

	status, err := worktree.Status()
	if err != nil {
		return err
	}
	if status.IsClean() {
		return nil
	}

	_, err = worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "typeset",
			Email: "typeset@localhost",
			When:  time.Now(),
		},
	})

	return err
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "untitled"
	}
	return slug
}
