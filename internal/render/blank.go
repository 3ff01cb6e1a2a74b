package render

import "bytes"

// StripBlankLines supprime toute ligne ne contenant que des blancs.
// Appliquée deux fois, elle donne le même résultat qu'une fois.
func StripBlankLines(in []byte) []byte {
	lines := bytes.Split(in, []byte("\n"))
	kept := lines[:0]
	for _, l := range lines {
		if len(bytes.TrimSpace(l)) == 0 {
			continue
		}
		kept = append(kept, l)
	}
	return bytes.Join(kept, []byte("\n"))
}
