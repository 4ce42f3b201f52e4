package webtui

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"matchgames/internal/game"
	"matchgames/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html static/*.css static/*.js
var assetsFS embed.FS

type ServerConfig struct {
	Addr    string
	Catalog *game.Catalog
	// Args go before the game subcommand of every spawned session.
	Args []string
	// Command is the game executable. Empty means the running binary.
	Command string
	Log     *logrus.Logger
}

type Server struct {
	cfg  ServerConfig
	tmpl *template.Template
	md   goldmark.Markdown
	log  *logrus.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("webtui: missing addr")
	}
	if cfg.Catalog == nil {
		return nil, errors.New("webtui: missing catalog")
	}
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	log := cfg.Log
	if log == nil {
		log = logging.Discard()
	}
	return &Server{cfg: cfg, tmpl: tmpl, md: goldmark.New(), log: log}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /terminal", s.handleTerminal)
	mux.HandleFunc("GET /ws", s.handleWS)

	mux.HandleFunc("GET /static/app.css", s.handleStatic("static/app.css", "text/css; charset=utf-8"))
	mux.HandleFunc("GET /static/app.js", s.handleStatic("static/app.js", "text/javascript; charset=utf-8"))

	return mux
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

type gameLink struct {
	Title string
	Desc  string
	Href  string
}

type indexVM struct {
	Fraction []gameLink
	Times    []gameLink
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cat := s.cfg.Catalog
	var vm indexVM
	for _, l := range cat.Fraction.Levels {
		vm.Fraction = append(vm.Fraction, gameLink{
			Title: fmt.Sprintf("Level %d", l.Level),
			Desc:  l.Description,
			Href:  "/terminal?game=fraction&level=" + strconv.Itoa(l.Level),
		})
	}
	for n := cat.Times.Min; n <= cat.Times.Max; n++ {
		vm.Times = append(vm.Times, gameLink{
			Title: fmt.Sprintf("%d×", n),
			Href:  "/terminal?game=times&table=" + strconv.Itoa(n),
		})
	}
	s.render(w, "index.html", vm)
}

type terminalVM struct {
	Title        string
	Instructions template.HTML
	Hint         string
	Query        string
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	args, err := sessionArgs(s.cfg.Catalog, q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	vm := terminalVM{Title: "Match Games", Query: encodeSession(args)}

	var md string
	switch q.Get("game") {
	case string(game.KindFraction):
		l, _ := s.cfg.Catalog.FractionLevel(atoiOr(q.Get("level"), 1))
		vm.Title = "Fraction Table: " + l.Description
		md, vm.Hint = l.Instructions, l.Hint
	case string(game.KindTimes):
		vm.Title = fmt.Sprintf("Multiplication Table of %d", atoiOr(q.Get("table"), s.cfg.Catalog.Times.Min))
		md, vm.Hint = s.cfg.Catalog.Times.Instructions, s.cfg.Catalog.Times.Hint
	}
	if md != "" {
		html, err := s.renderMarkdown(md)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		vm.Instructions = html
	}
	s.render(w, "terminal.html", vm)
}

func (s *Server) render(w http.ResponseWriter, name string, vm any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, vm); err != nil {
		s.log.WithError(err).WithField("template", name).Error("render page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		_, _ = io.WriteString(w, err.Error())
	}
}

// renderMarkdown converts catalog text to HTML. goldmark drops raw HTML by
// default, so the result is safe to inline.
func (s *Server) renderMarkdown(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render instructions: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// sessionArgs maps the query of a terminal page or socket to the game
// subcommand of the spawned process. Only known games and in-range numbers
// pass, so browsers cannot inject arbitrary arguments.
func sessionArgs(cat *game.Catalog, q url.Values) ([]string, error) {
	switch g := strings.TrimSpace(q.Get("game")); g {
	case "":
		return nil, nil
	case string(game.KindFraction):
		level, err := queryInt(q, "level", 1, 1, len(cat.Fraction.Levels))
		if err != nil {
			return nil, err
		}
		round, err := queryInt(q, "round", 1, 1, cat.Fraction.Rounds)
		if err != nil {
			return nil, err
		}
		return []string{g, "--level", strconv.Itoa(level), "--round", strconv.Itoa(round)}, nil
	case string(game.KindTimes):
		table, err := queryInt(q, "table", cat.Times.Min, cat.Times.Min, cat.Times.Max)
		if err != nil {
			return nil, err
		}
		return []string{g, "--table", strconv.Itoa(table)}, nil
	default:
		return nil, fmt.Errorf("unknown game %q", g)
	}
}

func queryInt(q url.Values, key string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s %q (expected %d..%d)", key, raw, lo, hi)
	}
	return n, nil
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// encodeSession turns validated session args back into the query the page
// hands to /ws.
func encodeSession(args []string) string {
	if len(args) == 0 {
		return ""
	}
	v := url.Values{}
	v.Set("game", args[0])
	for i := 1; i+1 < len(args); i += 2 {
		v.Set(strings.TrimPrefix(args[i], "--"), args[i+1])
	}
	return v.Encode()
}
