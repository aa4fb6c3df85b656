package cachepolicy

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// formatVersion tags the wire form produced by Marshal. Bump it whenever
// a field is added, removed, or reinterpreted.
const formatVersion = 1

// snapshot is the stable, versioned structured form a policy serializes
// to, per spec.md §6: creation time, options, request snapshot, response
// snapshot, and a format-version tag. Nothing derived (parsed directives,
// Vary field list) is stored; Unmarshal recomputes it via New, so
// round-tripping reproduces every verdict bit-identically.
type snapshot struct {
	Version int
	Created int64
	Opts    Options
	Req     Request
	Res     Response
}

// Marshal encodes p into its stable structured form.
func (p *CachePolicy) Marshal() ([]byte, error) {
	s := snapshot{
		Version: formatVersion,
		Created: p.created,
		Opts:    p.opts,
		Req:     p.req,
		Res:     p.res,
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data produced by Marshal back into a CachePolicy.
func Unmarshal(data []byte) (*CachePolicy, error) {
	var s snapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, err
	}
	if s.Version != formatVersion {
		return nil, fmt.Errorf("cachepolicy: unsupported format version %d", s.Version)
	}
	return New(s.Req, s.Res, s.Created, s.Opts), nil
}
