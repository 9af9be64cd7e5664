package main

import (
	_ "embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/tomz197/hurricaneship/internal/config"
	"github.com/tomz197/hurricaneship/internal/logging"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

type pageData struct {
	SSHHost string
	SSHPort string
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	data := pageData{SSHHost: cfg.Web.DisplayHost, SSHPort: cfg.SSH.Port}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			log.Warn("render page", zap.String("remote", r.RemoteAddr), zap.Error(err))
		}
	})

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	log.Info("starting web server", zap.String("addr", "http://"+addr))
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
