package share

import "github.com/atotto/clipboard"

type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard (xclip/xsel/wl-copy on Linux).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
