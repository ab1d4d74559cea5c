package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
)

// compressedMagic prefixes snappy archives so readers can reject plain
// JSON handed to the wrong decoder with a clear error.
var compressedMagic = []byte("OMAP\x01")

// WriteJSON streams an indented payload document.
func WriteJSON(w io.Writer, payload *Payload) error {
	return writeIndented(w, payload)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}

// ReadJSON parses a payload document, rejecting unknown versions.
func ReadJSON(r io.Reader) (*Payload, error) {
	var payload Payload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if payload.Version > FormatVersion {
		return nil, fmt.Errorf("payload version %d is newer than supported %d", payload.Version, FormatVersion)
	}
	return &payload, nil
}

// WriteCompressed writes a snappy-compressed payload archive with the
// format magic up front.
func WriteCompressed(w io.Writer, payload *Payload) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, payload); err != nil {
		return err
	}
	if _, err := w.Write(compressedMagic); err != nil {
		return fmt.Errorf("write archive header: %w", err)
	}
	if _, err := w.Write(snappy.Encode(nil, buf.Bytes())); err != nil {
		return fmt.Errorf("write archive body: %w", err)
	}
	return nil
}

// ReadCompressed reads an archive produced by WriteCompressed.
func ReadCompressed(r io.Reader) (*Payload, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	if !bytes.HasPrefix(raw, compressedMagic) {
		return nil, fmt.Errorf("not a compressed export archive")
	}
	decoded, err := snappy.Decode(nil, raw[len(compressedMagic):])
	if err != nil {
		return nil, fmt.Errorf("decompress archive: %w", err)
	}
	return ReadJSON(bytes.NewReader(decoded))
}

// WriteContactsCSV writes one row per person with the contact columns.
// Privacy filtering happens at payload build time, so an excluded
// email simply comes out empty here.
func WriteContactsCSV(w io.Writer, payload *Payload) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "name", "email", "role", "department", "location", "expertise"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range payload.People {
		row := []string{
			p.ID,
			p.Name,
			p.Email,
			p.Role,
			p.Department,
			p.Location,
			strings.Join(p.Expertise, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
