package clipboard

import (
	"sync"

	osclip "github.com/zyedidia/clipboard"
)

// SystemBridge mirrors copies to and reads pastes from a clipboard
// shared with other programs.
type SystemBridge interface {
	Read() (string, error)
	Write(text string) error
}

// Connect probes the operating system clipboard and returns a bridge
// to it. When no system clipboard is reachable (headless session, no
// helper binary installed) the bridge falls back to process-local
// memory and the editor keeps working with its internal ring only.
func Connect() SystemBridge {
	if err := osclip.Initialize(); err != nil {
		return &memoryBridge{}
	}
	return systemBridge{}
}

type systemBridge struct{}

func (systemBridge) Read() (string, error) {
	return osclip.ReadAll("clipboard")
}

func (systemBridge) Write(text string) error {
	return osclip.WriteAll(text, "clipboard")
}

// memoryBridge stands in when the OS clipboard is unavailable.
type memoryBridge struct {
	mu   sync.Mutex
	text string
}

func (m *memoryBridge) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *memoryBridge) Write(text string) error {
	m.mu.Lock()
	m.text = text
	m.mu.Unlock()
	return nil
}
