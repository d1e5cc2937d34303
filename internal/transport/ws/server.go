package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"voxelgeom.dev/internal/catalogs"
	"voxelgeom.dev/internal/nodebox"
	"voxelgeom.dev/internal/param"
	"voxelgeom.dev/internal/protocol"
)

// Server is the geometry debug endpoint: a websocket that decodes raw
// param2 values and resolves node boxes against the loaded catalog.
// Every request is validated against its JSON schema before dispatch.
type Server struct {
	catalog *catalogs.NodeCatalog
	log     *log.Logger

	decodeSchema  *jsonschema.Schema
	resolveSchema *jsonschema.Schema

	upgrader websocket.Upgrader

	// Per-connection deadlines. Set before serving.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func NewServer(c *catalogs.NodeCatalog, schemasDir string, logger *log.Logger) (*Server, error) {
	decodeSchema, err := jsonschema.Compile(filepath.Join(schemasDir, "decode.schema.json"))
	if err != nil {
		return nil, fmt.Errorf("compile decode schema: %w", err)
	}
	resolveSchema, err := jsonschema.Compile(filepath.Join(schemasDir, "resolve.schema.json"))
	if err != nil {
		return nil, fmt.Errorf("compile resolve schema: %w", err)
	}

	return &Server{
		catalog:       c,
		log:           logger,
		decodeSchema:  decodeSchema,
		resolveSchema: resolveSchema,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 5 * time.Second,
	}, nil
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		out := make(chan []byte, 16)

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b, ok := <-out:
					if !ok {
						return
					}
					_ = conn.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(s.ReadTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				return
			}
			reply := s.dispatch(msg)
			b, err := json.Marshal(reply)
			if err != nil {
				continue
			}
			select {
			case out <- b:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Server) dispatch(msg []byte) any {
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		return errorMsg("", protocol.ErrProtoBadRequest, "not a JSON message")
	}
	if base.ProtocolVersion != protocol.Version {
		return errorMsg("", protocol.ErrProtoBadRequest, "bad protocol_version")
	}

	switch base.Type {
	case protocol.TypeDecode:
		return s.handleDecode(msg)
	case protocol.TypeResolve:
		return s.handleResolve(msg)
	default:
		return errorMsg("", protocol.ErrProtoBadRequest, "unknown message type "+base.Type)
	}
}

func (s *Server) handleDecode(msg []byte) any {
	if err := validateAgainst(s.decodeSchema, msg); err != nil {
		return errorMsg("", protocol.ErrProtoBadRequest, err.Error())
	}
	var req protocol.DecodeMsg
	if err := json.Unmarshal(msg, &req); err != nil {
		return errorMsg("", protocol.ErrProtoBadRequest, err.Error())
	}

	kind := param.None
	if req.Node != "" {
		k, ok := s.catalog.KindOf(req.Node)
		if !ok {
			return errorMsg(req.ID, protocol.ErrUnknownNode, req.Node)
		}
		kind = k
	} else {
		k, err := param.ParseKind(req.Kind)
		if err != nil {
			return errorMsg(req.ID, protocol.ErrUnknownKind, req.Kind)
		}
		kind = k
	}

	resp := paramMsg(kind, param.Value(req.Param2))
	resp.ID = req.ID
	resp.Node = req.Node
	return resp
}

func (s *Server) handleResolve(msg []byte) any {
	if err := validateAgainst(s.resolveSchema, msg); err != nil {
		return errorMsg("", protocol.ErrProtoBadRequest, err.Error())
	}
	var req protocol.ResolveMsg
	if err := json.Unmarshal(msg, &req); err != nil {
		return errorMsg("", protocol.ErrProtoBadRequest, err.Error())
	}

	kind, ok := s.catalog.KindOf(req.Node)
	if !ok {
		return errorMsg(req.ID, protocol.ErrUnknownNode, req.Node)
	}
	for _, nid := range req.Neighbors {
		if _, ok := s.catalog.KindOf(nid); !ok {
			return errorMsg(req.ID, protocol.ErrUnknownNode, nid)
		}
	}
	raw := param.Value(req.Param2)
	conn := s.sampleNeighbors(req.Node, kind, raw, req.Neighbors)

	boxes, _ := s.catalog.ResolveBoxes(req.Node, raw, conn)
	spec, _ := s.catalog.SpecOf(req.Node)

	resp := &protocol.BoxesMsg{
		Type:            protocol.TypeBoxes,
		ProtocolVersion: protocol.Version,
		ID:              req.ID,
		Node:            req.Node,
		BoxType:         spec.Type.String(),
		Boxes:           make([][6]float64, 0, len(boxes)),
	}
	for _, b := range boxes {
		resp.Boxes = append(resp.Boxes, b.Array())
	}
	return resp
}

// sampleNeighbors turns the request's facing-relative neighbor names
// into the world-offset lookup SampleConnectivity expects.
func (s *Server) sampleNeighbors(node string, kind param.Kind, raw param.Value, neighbors map[string]string) nodebox.Connectivity {
	world := map[[3]int]string{}
	for name, nid := range neighbors {
		d, ok := nodebox.ParseDir(name)
		if !ok {
			continue
		}
		v := d.WorldVec(kind, raw)
		off := [3]int{
			int(math.Round(v.X())),
			int(math.Round(v.Y())),
			int(math.Round(v.Z())),
		}
		world[off] = nid
	}
	return s.catalog.SampleConnectivity(node, raw, func(off [3]int) (string, bool) {
		nid, ok := world[off]
		return nid, ok
	})
}

func paramMsg(kind param.Kind, raw param.Value) *protocol.ParamMsg {
	p := param.Unpack(kind, raw)
	resp := &protocol.ParamMsg{
		Type:            protocol.TypeParam,
		ProtocolVersion: protocol.Version,
		Kind:            kind.String(),
		Param2:          uint8(raw),
		Rot:             p.Rot,
		Color:           p.Color,
		Level:           p.Level,
		Shape:           p.Shape,
		LightDay:        p.LightDay,
		LightNight:      p.LightNight,
	}
	for _, f := range []struct {
		set  bool
		name string
	}{
		{p.FlowingDown, "flowing_down"},
		{p.RandomOffset, "random_offset"},
		{p.BigScale, "big_scale"},
		{p.NoMergeUp, "no_merge_up"},
		{p.NoMergeDown, "no_merge_down"},
	} {
		if f.set {
			resp.Flags = append(resp.Flags, f.name)
		}
	}

	switch kind {
	case param.WallMounted, param.ColorWallMounted:
		v := param.WallmountedToDir(p.Rot)
		resp.Facing = &[3]float64{v.X(), v.Y(), v.Z()}
	case param.FourDir, param.ColorFourDir:
		v := param.FourdirToDir(p.Rot)
		resp.Facing = &[3]float64{v.X(), v.Y(), v.Z()}
	case param.Facedir, param.ColorFacedir:
		v := param.FacedirToDir(p.Rot)
		resp.Facing = &[3]float64{v.X(), v.Y(), v.Z()}
	}
	return resp
}

func errorMsg(id, code, message string) *protocol.ErrorMsg {
	return &protocol.ErrorMsg{
		Type:            protocol.TypeError,
		ProtocolVersion: protocol.Version,
		ID:              id,
		Code:            code,
		Message:         message,
	}
}

func validateAgainst(s *jsonschema.Schema, msg []byte) error {
	var v any
	if err := json.Unmarshal(msg, &v); err != nil {
		return err
	}
	return s.Validate(v)
}
