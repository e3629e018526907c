package plan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/planhaus/planhaus/pkg/geometry"
)

// =============================================================================
// Space File Format
// =============================================================================

// SpaceFile is the on-disk request format: flat room entries plus the space
// dimensions and constraints.
//
//	{
//	  "width": 10,
//	  "height": 8,
//	  "rooms": [
//	    {"name": "Living Room", "width": 5, "height": 4, "priority": 9},
//	    {"id": "kitchen", "name": "Kitchen", "width": 3, "height": 3, "type": "kitchen"}
//	  ],
//	  "constraints": [
//	    {"type": "adjacency", "params": {"room1": "kitchen", "room2": "dining", "max_distance": 2}}
//	  ]
//	}
type SpaceFile struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Rooms       []RoomEntry  `json:"rooms,omitempty"`
	Constraints []Constraint `json:"constraints,omitempty"`
}

// RoomEntry is one room request in a space file. ID, type, and priority are
// optional; omitted values fall back to the package defaults.
type RoomEntry struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Type     string  `json:"type,omitempty"`
	Priority int     `json:"priority,omitempty"`
}

// ToSpace validates the file contents and builds a Space.
func (f SpaceFile) ToSpace() (Space, error) {
	dims, err := geometry.NewDimensions(f.Width, f.Height)
	if err != nil {
		return Space{}, err
	}

	rooms := make([]Room, 0, len(f.Rooms))
	for _, e := range f.Rooms {
		room, err := NewRoom(e.ID, e.Name, e.Width, e.Height)
		if err != nil {
			return Space{}, fmt.Errorf("room %q: %w", e.Name, err)
		}
		if e.Type != "" {
			room.Type = e.Type
		}
		if e.Priority != 0 {
			room.Priority = e.Priority
		}
		rooms = append(rooms, room)
	}

	return NewSpace(dims, rooms, f.Constraints)
}

// ReadSpaceFile reads and validates a space request from a JSON file.
func ReadSpaceFile(path string) (Space, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Space{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSpace(data)
}

// UnmarshalSpace decodes a space request from JSON bytes.
func UnmarshalSpace(data []byte) (Space, error) {
	var f SpaceFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Space{}, fmt.Errorf("unmarshal space: %w", err)
	}
	return f.ToSpace()
}

// =============================================================================
// Layout Serialization
// =============================================================================

// MarshalLayout serializes a layout's export document to pretty-printed JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l.Export(), "", "  ")
}

// WriteLayoutFile writes a layout's export document to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDocumentFile reads a previously exported layout document.
func ReadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return doc, nil
}

// RoomModels converts the document's room entries back into positioned
// rooms, e.g. to re-validate a previously exported layout.
func (d Document) RoomModels() []Room {
	rooms := make([]Room, len(d.Rooms))
	for i, rd := range d.Rooms {
		rooms[i] = Room{
			ID:   rd.ID,
			Name: rd.Name,
			Type: rd.Type,
			Dimensions: geometry.Dimensions{
				Width:  rd.Dimensions.Width,
				Height: rd.Dimensions.Height,
			},
			Position: rd.Position,
			Priority: DefaultPriority,
		}
	}
	return rooms
}
