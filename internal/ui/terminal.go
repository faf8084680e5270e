package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/patrickprogramme/shadowscribe/internal/clipboard"
	"github.com/patrickprogramme/shadowscribe/internal/yt"
)

type terminalUI struct {
	reader   *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	readClip func() (string, error)
}

func NewTerminal() Interface {
	return newTerminal(os.Stdin, os.Stdout, os.Stderr, clipboard.ReadAll)
}

func newTerminal(in io.Reader, out, errOut io.Writer, readClip func() (string, error)) *terminalUI {
	return &terminalUI{
		reader:   bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
		readClip: readClip,
	}
}

// GetVideoURL : URL du presse-papier si c'en est une, sinon on demande
// jusqu'à obtenir une URL dont on sait extraire l'ID.
func (t *terminalUI) GetVideoURL(ctx context.Context) (string, string, error) {
	// 1) clipboard
	if t.readClip != nil {
		if clip, err := t.readClip(); err == nil {
			if id, ok := yt.ExtractVideoID(clip); ok {
				t.PrintInfo(ctx, fmt.Sprintf("Utilisation de l'URL depuis le presse-papier: %s", clip))
				return clip, id, nil
			}
		}
	}

	// 2) prompt
	for {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}
		fmt.Fprint(t.out, "Entrez l'URL d'une vidéo Youtube: ")
		input, err := t.reader.ReadString('\n')
		url := strings.TrimSpace(input)
		if id, ok := yt.ExtractVideoID(url); ok {
			return url, id, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", "", fmt.Errorf("aucune URL saisie: %w", yt.ErrInvalidURL)
			}
			return "", "", fmt.Errorf("lecture stdin: %w", err)
		}
		fmt.Fprintln(t.out, "❌ URL invalide. Essayez à nouveau.")
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, s)
}
