package flat

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

// Persisted file names within an index directory.
const (
	manifestFile = "manifest.json"
	chunksFile   = "chunks.jsonl"
	vectorsFile  = "vectors.f32"
)

// indexVersion is the persisted layout version.
const indexVersion = 1

// manifest describes a persisted index and how to interpret it.
type manifest struct {
	IndexVersion int    `json:"index_version"`
	CreatedAt    string `json:"created_at"`
	Model        string `json:"model"`
	Dim          int    `json:"dim"`
	Count        int    `json:"count"`
}

// Save persists the index to dir. The write is atomic from the caller's
// perspective: files are staged into a temporary sibling directory which
// is renamed over dir on success, so a reader never observes a partial
// index. Any previous index at dir is replaced.
func (ix *Index) Save(dir string) error {
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create index parent dir: %w", err)
	}

	tmp, err := os.MkdirTemp(parent, filepath.Base(dir)+".tmp-")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := ix.writeTo(tmp); err != nil {
		return err
	}

	// Swap: move any previous index aside, promote the staged one.
	old := dir + ".old"
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("clear previous index backup: %w", err)
	}
	if _, err := os.Stat(dir); err == nil {
		if err := os.Rename(dir, old); err != nil {
			return fmt.Errorf("move previous index aside: %w", err)
		}
	}
	if err := os.Rename(tmp, dir); err != nil {
		// Best effort restore of the previous index.
		_ = os.Rename(old, dir)
		return fmt.Errorf("promote staged index: %w", err)
	}
	return os.RemoveAll(old)
}

// writeTo stages manifest, chunks and vectors into dir.
func (ix *Index) writeTo(dir string) error {
	m := manifest{
		IndexVersion: indexVersion,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Model:        ix.model,
		Dim:          ix.dim,
		Count:        len(ix.chunks),
	}
	mb, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), mb, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	cf, err := os.Create(filepath.Join(dir, chunksFile))
	if err != nil {
		return fmt.Errorf("create chunks file: %w", err)
	}
	bw := bufio.NewWriter(cf)
	for i := range ix.chunks {
		line, err := json.Marshal(ix.chunks[i])
		if err != nil {
			_ = cf.Close()
			return err
		}
		if _, err := bw.Write(line); err != nil {
			_ = cf.Close()
			return fmt.Errorf("write chunks: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			_ = cf.Close()
			return fmt.Errorf("write chunks: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = cf.Close()
		return fmt.Errorf("flush chunks: %w", err)
	}
	if err := cf.Close(); err != nil {
		return err
	}

	vf, err := os.Create(filepath.Join(dir, vectorsFile))
	if err != nil {
		return fmt.Errorf("create vectors file: %w", err)
	}
	if err := binary.Write(vf, binary.LittleEndian, ix.vectors); err != nil {
		_ = vf.Close()
		return fmt.Errorf("write vectors: %w", err)
	}
	return vf.Close()
}

// Load reads a persisted index from dir.
// Returns domain.ErrIndexNotFound when dir does not contain an index and
// domain.ErrCorruptIndex when the persisted payload is unreadable or
// internally inconsistent.
func Load(dir string) (*Index, error) {
	mb, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, dir)
		}
		return nil, fmt.Errorf("%w: read manifest: %v", domain.ErrCorruptIndex, err)
	}

	var m manifest
	if err := json.Unmarshal(mb, &m); err != nil {
		return nil, fmt.Errorf("%w: invalid manifest: %v", domain.ErrCorruptIndex, err)
	}
	if m.IndexVersion != indexVersion {
		return nil, fmt.Errorf("%w: unsupported index version %d", domain.ErrCorruptIndex, m.IndexVersion)
	}
	if m.Dim <= 0 || m.Count < 0 {
		return nil, fmt.Errorf("%w: invalid manifest dim=%d count=%d", domain.ErrCorruptIndex, m.Dim, m.Count)
	}

	chunks, err := loadChunks(filepath.Join(dir, chunksFile))
	if err != nil {
		return nil, err
	}
	if len(chunks) != m.Count {
		return nil, fmt.Errorf("%w: manifest says %d chunks, file has %d",
			domain.ErrCorruptIndex, m.Count, len(chunks))
	}

	vectors, err := loadVectors(filepath.Join(dir, vectorsFile), m.Count, m.Dim)
	if err != nil {
		return nil, err
	}

	ix := &Index{
		model:   m.Model,
		dim:     m.Dim,
		chunks:  chunks,
		vectors: vectors,
		norms:   make([]float64, m.Count),
	}
	for i := 0; i < m.Count; i++ {
		ix.norms[i] = norm(vectors[i*m.Dim : (i+1)*m.Dim])
	}
	return ix, nil
}

func loadChunks(path string) ([]domain.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open chunks file: %v", domain.ErrCorruptIndex, err)
	}
	defer f.Close()

	chunks := []domain.Chunk{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var c domain.Chunk
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("%w: invalid chunk record: %v", domain.ErrCorruptIndex, err)
		}
		chunks = append(chunks, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read chunks file: %v", domain.ErrCorruptIndex, err)
	}
	return chunks, nil
}

func loadVectors(path string, count, dim int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open vectors file: %v", domain.ErrCorruptIndex, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat vectors file: %v", domain.ErrCorruptIndex, err)
	}
	expected := int64(count) * int64(dim) * 4
	if st.Size() != expected {
		return nil, fmt.Errorf("%w: vectors file is %d bytes, want %d (count=%d dim=%d)",
			domain.ErrCorruptIndex, st.Size(), expected, count, dim)
	}

	out := make([]float32, count*dim)
	if err := binary.Read(f, binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("%w: read vectors: %v", domain.ErrCorruptIndex, err)
	}
	return out, nil
}
