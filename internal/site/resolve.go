package site

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Default project layout of the documentation theme.
const (
	DefaultPublicDir  = "public"
	DefaultContentDir = "src/content/docs"
)

// contentExtensions are tried in order when resolving a sidebar slug.
var contentExtensions = []string{".md", ".mdx", "/index.md", "/index.mdx"}

// Resolver checks referenced assets against a project directory.
//
// Paths starting with "/" are served from PublicDir; other relative paths are
// resolved from Root. Remote URLs are not checked.
type Resolver struct {
	Root       string
	PublicDir  string
	ContentDir string
	FS         fs.StatFS // defaults to os.DirFS(Root)
}

// NewResolver returns a Resolver for root with the default layout.
func NewResolver(root string) *Resolver {
	return &Resolver{Root: root, PublicDir: DefaultPublicDir, ContentDir: DefaultContentDir}
}

// Resolve verifies that every asset and sidebar target of cfg exists and
// returns a configuration whose slug-only sidebar entries carry the page
// title as label. All missing paths are reported in a single error wrapping
// ErrUnresolvedAssetPath.
func (r *Resolver) Resolve(cfg *Config) (*Config, error) {
	fsys := r.fs()
	var missing []string

	for _, p := range cfg.AssetPaths() {
		if isRemote(p) {
			continue
		}
		if !exists(fsys, r.assetPath(p)) {
			missing = append(missing, p)
		}
	}

	sidebar := cfg.Sidebar()
	_ = walkSidebar(sidebar, func(e *SidebarEntry) error {
		switch {
		case e.Slug != "":
			file, ok := r.findPage(fsys, e.Slug)
			if !ok {
				missing = append(missing, "slug:"+e.Slug)
				return nil
			}
			if e.Label == "" {
				e.Label = r.labelFor(fsys, file, e.Slug)
			}
		case e.Autogenerate != nil:
			dir := path.Join(r.contentDir(), cleanRel(e.Autogenerate.Directory))
			if info, err := fs.Stat(fsys, dir); err != nil || !info.IsDir() {
				missing = append(missing, "autogenerate:"+e.Autogenerate.Directory)
			}
		}
		return nil
	})

	if len(missing) > 0 {
		return nil, unresolvedAssetsError(r.Root, missing)
	}

	decl := cfg.Declaration()
	decl.Sidebar = sidebar
	return &Config{decl: decl}, nil
}

func (r *Resolver) fs() fs.StatFS {
	if r.FS != nil {
		return r.FS
	}
	root := r.Root
	if root == "" {
		root = "."
	}
	return os.DirFS(root).(fs.StatFS)
}

func (r *Resolver) contentDir() string {
	if r.ContentDir == "" {
		return DefaultContentDir
	}
	return cleanRel(r.ContentDir)
}

// assetPath maps a declared path to an fs.FS path.
func (r *Resolver) assetPath(p string) string {
	if strings.HasPrefix(p, "/") {
		public := r.PublicDir
		if public == "" {
			public = DefaultPublicDir
		}
		return path.Join(cleanRel(public), cleanRel(p))
	}
	return cleanRel(p)
}

func (r *Resolver) findPage(fsys fs.StatFS, slug string) (string, bool) {
	base := path.Join(r.contentDir(), cleanRel(slug))
	for _, ext := range contentExtensions {
		candidate := base + ext
		if exists(fsys, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) labelFor(fsys fs.StatFS, file, slug string) string {
	data, err := fs.ReadFile(fsys, file)
	if err == nil {
		if title := PageTitle(data); title != "" {
			return title
		}
	}
	return path.Base(slug)
}

func exists(fsys fs.StatFS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

func isRemote(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:")
}

// cleanRel turns "./a/b", "/a/b" and "a\\b" into the fs.FS form "a/b".
func cleanRel(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}
