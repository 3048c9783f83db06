package trafficviz

import (
	"bytes"
	"strconv"
	"sync"
)

// frameCache memoizes encoded frames. Keys embed the snapshot sequence,
// selection version and surface size, so entries go stale naturally; the
// map is cleared on every state change to keep it from growing.
type frameCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFrameCache() *frameCache {
	return &frameCache{entries: map[string][]byte{}}
}

func frameKey(format, hover string, seq, version uint64, w, h float64) string {
	var b bytes.Buffer
	b.WriteString(format)
	b.WriteByte('|')
	b.WriteString(hover)
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(seq, 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(version, 10))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(w, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(h, 'g', -1, 64))
	return b.String()
}

func (fc *frameCache) get(key string) ([]byte, bool) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	buf, ok := fc.entries[key]
	return buf, ok
}

func (fc *frameCache) put(key string, buf []byte) {
	fc.mu.Lock()
	fc.entries[key] = buf
	fc.mu.Unlock()
}

func (fc *frameCache) clear() {
	fc.mu.Lock()
	fc.entries = map[string][]byte{}
	fc.mu.Unlock()
}
