package deltaf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
)

// Source lists and opens the recordings that make up one batch. Names
// returned by List are relative to the source and are passed back to Open
// unchanged.
type Source interface {
	List(ctx context.Context, pattern string) ([]string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// NewSource returns a Google Storage source for gs:// paths (client must then
// be non-nil) and a local directory source otherwise.
func NewSource(dir string, client *storage.Client) (Source, error) {
	if strings.HasPrefix(dir, "gs://") {
		if client == nil {
			return nil, fmt.Errorf("%s: a storage client is required for gs:// paths", dir)
		}

		// Detect the bucket and the prefix that holds the recordings
		pathParts := strings.SplitN(strings.TrimPrefix(dir, "gs://"), "/", 2)
		if pathParts[0] == "" {
			return nil, fmt.Errorf("Tried to find a bucket in your google storage path, but got none: %s", dir)
		}
		prefix := ""
		if len(pathParts) == 2 && pathParts[1] != "" {
			prefix = strings.TrimSuffix(pathParts[1], "/") + "/"
		}

		return &GSSource{Client: client, Bucket: pathParts[0], Prefix: prefix}, nil
	}

	expanded, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return DirSource{Dir: abs}, nil
}

// MatchRecording reports whether name matches pattern once any compression
// suffix is removed.
func MatchRecording(pattern, name string) (bool, error) {
	ok, err := path.Match(pattern, TrimCompressionSuffix(name))
	if err != nil {
		return false, pfx.Err(err)
	}

	return ok, nil
}

// DirSource reads recordings from one local directory, non-recursively.
type DirSource struct {
	Dir string
}

func (s DirSource) String() string { return s.Dir }

func (s DirSource) List(ctx context.Context, pattern string) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ok, err := MatchRecording(pattern, entry.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, entry.Name())
		}
	}

	sort.Strings(out)

	return out, nil
}

func (s DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

// GSSource reads recordings stored as objects directly under a Google Storage
// prefix. Safe for concurrent use if the client is.
type GSSource struct {
	Client *storage.Client
	Bucket string
	Prefix string
}

func (s *GSSource) String() string { return "gs://" + s.Bucket + "/" + s.Prefix }

func (s *GSSource) List(ctx context.Context, pattern string) ([]string, error) {
	it := s.Client.Bucket(s.Bucket).Objects(ctx, &storage.Query{
		Prefix:    s.Prefix,
		Delimiter: "/",
	})

	out := make([]string, 0)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", s, err))
		}

		// Synthetic "directories" only carry a prefix
		if attrs.Name == "" {
			continue
		}

		name := strings.TrimPrefix(attrs.Name, s.Prefix)
		ok, err := MatchRecording(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, name)
		}
	}

	sort.Strings(out)

	return out, nil
}

func (s *GSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rdr, err := s.Client.Bucket(s.Bucket).Object(s.Prefix + name).NewReader(ctx)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s%s: %w", s, name, err))
	}

	return rdr, nil
}
