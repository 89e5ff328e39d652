package main

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/loopcontext/msgcode"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [flags] [path...]",
	Short: "Discover message codes referenced in Go code",
	Long: `Extract scans Go files for message codes passed to Get, NewError and
WrapError, and for msgcode.Entry literals. If no path is given, the current
directory is scanned.

Modes:
  - Codes only (default): writes unique codes, one per line.
  - Check: with --check, reports codes the configured resources do not
    define and fails if any is missing.
  - Sync: with --sync FILE, adds missing codes to a resource file with an
    empty template and the level given by --level; Entry literals found in
    code replace the corresponding messages.`,
	RunE: runExtractCmd,
}

func init() {
	flags := extractCmd.Flags()
	flags.StringP("out", "o", "", "output file (codes: one per line; sync: resource path)")
	flags.Bool("check", false, "report codes missing from the configured resources")
	flags.String("sync", "", "resource file to add missing codes to")
	flags.String("level", "E", "level of codes added by --sync")
	flags.Bool("include-tests", false, "include _test.go files")
	flags.String("pkg", "github.com/loopcontext/msgcode", "import path of the msgcode package")
	flags.StringSlice("exclude", []string{"vendor"}, "directory names to skip")
}

type extractConfig struct {
	paths        []string
	out          string
	check        bool
	sync         string
	level        msgcode.Level
	includeTests bool
	pkg          string
	excludeDirs  []string
}

func runExtractCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	cfg := extractConfig{paths: args}
	if len(cfg.paths) == 0 {
		cfg.paths = []string{"."}
	}
	cfg.out, _ = flags.GetString("out")
	cfg.check, _ = flags.GetBool("check")
	cfg.sync, _ = flags.GetString("sync")
	cfg.includeTests, _ = flags.GetBool("include-tests")
	cfg.pkg, _ = flags.GetString("pkg")
	cfg.excludeDirs, _ = flags.GetStringSlice("exclude")

	levelName, _ := flags.GetString("level")
	level, err := msgcode.ParseLevel(levelName)
	if err != nil {
		return err
	}
	cfg.level = level

	ext, err := scanPaths(&cfg)
	if err != nil {
		return err
	}

	switch {
	case cfg.sync != "":
		return runExtractSync(cmd.Context(), &cfg, ext)
	case cfg.check:
		c, err := app.loadCatalog(cmd.Context())
		if err != nil {
			return err
		}
		return runExtractCheck(cmd.OutOrStdout(), c, ext.sortedCodes())
	default:
		return writeOutput(cfg.out, cmd.OutOrStdout(), func(w io.Writer) error {
			for _, code := range ext.sortedCodes() {
				if _, err := fmt.Fprintln(w, code); err != nil {
					return err
				}
			}
			return nil
		})
	}
}

func runExtractCheck(w io.Writer, c msgcode.Catalog, codes []string) error {
	missing := 0
	for _, code := range codes {
		if _, found := c.Get(code); !found {
			fmt.Fprintf(w, "%s: %s is not defined\n", errorLabel(), code)
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d undefined message code(s)", missing)
	}
	fmt.Fprintf(w, "%d message code(s), all defined\n", len(codes))
	return nil
}

// codeExtractor collects message codes from Go files via AST.
type codeExtractor struct {
	pkgImport string
	pkgName   string // local name in current file (e.g. "msgcode")
	codes     map[string]struct{}
	entries   map[string]msgcode.Entry // definition code -> Entry literal
	argIdx    map[string]int
}

func newCodeExtractor(pkgImport string) *codeExtractor {
	return &codeExtractor{
		pkgImport: pkgImport,
		codes:     make(map[string]struct{}),
		entries:   make(map[string]msgcode.Entry),
		argIdx: map[string]int{
			"Get":       0,
			"NewError":  1,
			"WrapError": 2,
		},
	}
}

func (e *codeExtractor) extractFromFile(path string, src []byte) error {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, src, 0)
	if err != nil {
		return err
	}
	e.pkgName = e.importName(f)
	if e.pkgName == "" {
		return nil
	}
	ast.Walk(e, f)
	return nil
}

func (e *codeExtractor) importName(file *ast.File) string {
	for _, imp := range file.Imports {
		if imp.Path == nil {
			continue
		}
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != e.pkgImport {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return "msgcode"
	}
	return ""
}

func (e *codeExtractor) Visit(node ast.Node) ast.Visitor {
	if cl, ok := node.(*ast.CompositeLit); ok {
		e.visitCompositeLit(cl)
		return e
	}

	call, ok := node.(*ast.CallExpr)
	if !ok {
		return e
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return e
	}
	idx, ok := e.argIdx[sel.Sel.Name]
	if !ok {
		return e
	}
	// NewError and WrapError are package functions, Get is a method.
	if pkg, isIdent := sel.X.(*ast.Ident); isIdent && pkg.Name == e.pkgName {
		if sel.Sel.Name == "Get" {
			return e
		}
	} else if sel.Sel.Name != "Get" {
		return e
	}
	if idx >= len(call.Args) {
		return e
	}
	if code := e.extractString(call.Args[idx]); code != "" {
		e.codes[code] = struct{}{}
	}
	return e
}

func (e *codeExtractor) extractString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.BasicLit:
		if t.Kind == token.STRING {
			s, _ := strconv.Unquote(t.Value)
			return s
		}
	case *ast.BinaryExpr:
		if t.Op == token.ADD {
			x, y := e.extractString(t.X), e.extractString(t.Y)
			if x != "" && y != "" {
				return x + y
			}
		}
	case *ast.ParenExpr:
		return e.extractString(t.X)
	}
	return ""
}

func (e *codeExtractor) sortedCodes() []string {
	out := make([]string, 0, len(e.codes))
	for code := range e.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func scanPaths(cfg *extractConfig) (*codeExtractor, error) {
	excludeSet := make(map[string]struct{})
	for _, d := range cfg.excludeDirs {
		d = strings.TrimSpace(d)
		if d != "" {
			excludeSet[d] = struct{}{}
		}
	}

	wanted := func(path string) bool {
		if filepath.Ext(path) != ".go" {
			return false
		}
		return cfg.includeTests || !strings.HasSuffix(path, "_test.go")
	}

	ext := newCodeExtractor(cfg.pkg)
	for _, path := range cfg.paths {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !wanted(path) {
				continue
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			if err := ext.extractFromFile(path, src); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if _, skip := excludeSet[d.Name()]; skip && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			if !wanted(p) {
				return nil
			}
			src, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			return ext.extractFromFile(p, src)
		})
		if err != nil {
			return nil, err
		}
	}
	return ext, nil
}

func runExtractSync(ctx context.Context, cfg *extractConfig, ext *codeExtractor) error {
	c := msgcode.New(msgcode.Config{})
	if err := c.Load(ctx, app.loader(), cfg.sync, msgcode.ReplaceAll); err != nil {
		return err
	}

	added, err := syncCatalog(c, ext, cfg.level)
	if err != nil {
		return err
	}

	outPath := cfg.out
	if outPath == "" {
		outPath = cfg.sync
	}
	if err := writeResource(outPath, msgcode.Entries(c)); err != nil {
		return err
	}
	if added > 0 {
		fmt.Fprintf(os.Stderr, "msgcode: added %d code(s) to %s\n", added, outPath)
	}
	return nil
}
