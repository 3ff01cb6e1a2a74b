package morph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/patrickprogramme/cha2xml/pkg/model"
)

// Etana représente la commande etana à exécuter (nom de binaire ou chemin) + dictionnaire.
type Etana struct {
	Name     string
	Path     string // chemin résolu vers l'exe
	DictPath string // dossier du dictionnaire (-path)
	Timeout  time.Duration
}

// NewEtana construit une instance. path doit être le chemin résolu vers l'exe.
func NewEtana(name, path, dictPath string, timeout time.Duration) *Etana {
	return &Etana{
		Name:     name,
		Path:     path,
		DictPath: dictPath,
		Timeout:  timeout,
	}
}

func (e *Etana) exe() string {
	if e.Path != "" {
		return e.Path
	}
	return e.Name
}

// BuildArgs construit les arguments passés à etana.
func (e *Etana) BuildArgs() []string {
	if e.DictPath == "" {
		return nil
	}
	return []string{"-path", e.DictPath}
}

// CheckBinary vérifie que le binaire existe et n'est pas un répertoire.
func (e *Etana) CheckBinary() error {
	if e == nil {
		return fmt.Errorf("etana non initialisé")
	}
	exe := e.exe()
	info, err := os.Stat(exe)
	if err != nil {
		// pas de fichier à cet emplacement : essayer le PATH
		if _, lerr := exec.LookPath(exe); lerr == nil {
			return nil
		}
		return fmt.Errorf("etana introuvable (%s) : %w", exe, err)
	}
	if info.IsDir() {
		return fmt.Errorf("le chemin spécifié pour etana est un répertoire, pas un exécutable : %s", exe)
	}
	return nil
}

// Analyze envoie le mot sur l'entrée standard d'etana et analyse sa sortie.
func (e *Etana) Analyze(ctx context.Context, word string) ([]model.Analysis, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.exe(), e.BuildArgs()...)
	cmd.Stdin = strings.NewReader(word + "\n")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	// un processus fils orphelin ne doit pas bloquer Wait après l'annulation
	cmd.WaitDelay = time.Second

	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("etana %q : %w", word, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("etana %q : %w, stderr: %s", word, err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("etana %q : %w", word, err)
	}
	return ParseOutput(string(out))
}
