package automation

import "github.com/atotto/clipboard"

func readClipboard() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupportedPlatform
	}
	return clipboard.ReadAll()
}
