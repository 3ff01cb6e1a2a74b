package ui

import "context"

// Interface : sortie utilisateur du convertisseur. Les méthodes peuvent être
// appelées depuis plusieurs goroutines.
type Interface interface {
	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)

	// Progress signale qu'une transcription de plus est traitée (done sur total).
	Progress(ctx context.Context, done, total int, path string)
}
