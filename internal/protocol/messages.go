package protocol

// DECODE (client -> server): decode a raw param2 value. Either a
// catalog node id or an explicit kind selects the encoding.
type DecodeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"` // request id, echoed back
	Node            string `json:"node,omitempty"`
	Kind            string `json:"kind,omitempty"`
	Param2          uint8  `json:"param2"`
}

// PARAM (server -> client): the decoded payload.
type ParamMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"`
	Node            string `json:"node,omitempty"`
	Kind            string `json:"kind"`
	Param2          uint8  `json:"param2"`

	Rot        uint8       `json:"rot,omitempty"`
	Color      uint8       `json:"color,omitempty"`
	Level      uint8       `json:"level,omitempty"`
	Shape      uint8       `json:"shape,omitempty"`
	LightDay   uint8       `json:"light_day,omitempty"`
	LightNight uint8       `json:"light_night,omitempty"`
	Flags      []string    `json:"flags,omitempty"` // "flowing_down", "random_offset", ...
	Facing     *[3]float64 `json:"facing,omitempty"`
}

// RESOLVE (client -> server): resolve a node's collision boxes for a
// raw param2 and an optional neighbor arrangement.
type ResolveMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"`
	Node            string `json:"node"`
	Param2          uint8  `json:"param2"`

	// Neighbor node ids keyed by direction ("top", "bottom", "front",
	// "left", "back", "right"). Absent directions mean air.
	Neighbors map[string]string `json:"neighbors,omitempty"`
}

// BOXES (server -> client): resolved boxes as [x1,y1,z1,x2,y2,z2].
type BoxesMsg struct {
	Type            string       `json:"type"`
	ProtocolVersion string       `json:"protocol_version"`
	ID              string       `json:"id,omitempty"`
	Node            string       `json:"node"`
	BoxType         string       `json:"box_type"`
	Boxes           [][6]float64 `json:"boxes"`
}

// ERROR (server -> client).
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ID              string `json:"id,omitempty"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}
