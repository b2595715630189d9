package core

// Network adapters: a status request/response surface and a block-gossip
// transport, both newline-delimited JSON over raw TCP. One newline
// terminated JSON object in, one out; a "hello" greeting on gossip
// connect; a "block" message on broadcast. Each inbound connection gets
// its own goroutine, a bounded reader and read/write deadlines, while the
// Chain writer stays single-threaded regardless of how many connections
// are being served concurrently.

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	maxRequestBytes = 64 * 1024
	connDeadline    = 10 * time.Second
)

// StatusRequest is the single request shape the status surface accepts.
type StatusRequest struct {
	Method string `json:"method"`
}

// StatusResponse is either a tip report or an error.
type StatusResponse struct {
	Height uint64 `json:"height,omitempty"`
	Hash   string `json:"hash,omitempty"`
	Error  string `json:"error,omitempty"`
}

// StatusServer answers one newline-terminated request per connection with
// the chain's current tip, or an error for any unrecognised method.
type StatusServer struct {
	chain *Chain
}

// NewStatusServer returns a StatusServer reading from chain.
func NewStatusServer(chain *Chain) *StatusServer {
	return &StatusServer{chain: chain}
}

// Serve accepts connections on ln until it returns a non-nil error (e.g.
// because ln was closed), handling each connection in its own goroutine.
func (s *StatusServer) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

func (s *StatusServer) handleConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connDeadline))

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), maxRequestBytes)
	if !scanner.Scan() {
		return
	}

	var resp StatusResponse
	var req StatusRequest
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		resp = StatusResponse{Error: "bad json"}
	} else if req.Method == "get_tip" {
		resp = StatusResponse{Height: s.chain.TipHeight(), Hash: s.chain.TipHash()}
	} else {
		resp = StatusResponse{Error: "unknown method"}
	}

	data, err := json.Marshal(resp)
	if err != nil {
		logrus.Warnf("status: marshal response: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		logrus.Warnf("status: write response: %v", err)
	}
}

// GossipMessage is the envelope sent on a gossip connection: a "hello"
// greeting on connect, or a "block" push on broadcast.
type GossipMessage struct {
	Type   string `json:"type"`
	Height uint64 `json:"height,omitempty"`
	Data   *Block `json:"data,omitempty"`
}

// GossipServer greets every inbound connection with the chain's current
// height and then closes; outbound pushes are sent via Broadcast.
type GossipServer struct {
	chain *Chain
}

// NewGossipServer returns a GossipServer reading from chain.
func NewGossipServer(chain *Chain) *GossipServer {
	return &GossipServer{chain: chain}
}

// Serve accepts connections on ln until it returns a non-nil error, sending
// a hello greeting to each in its own goroutine.
func (g *GossipServer) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go g.greet(conn)
	}
}

func (g *GossipServer) greet(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(connDeadline))

	msg := GossipMessage{Type: "hello", Height: g.chain.TipHeight()}
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.Warnf("gossip: marshal hello: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		logrus.Warnf("gossip: write hello: %v", err)
	}
}

// Broadcast pushes b to every peer address in peers, each over its own
// short-lived connection. Failures are logged and otherwise ignored: the
// gossip surface has no retry or backpressure policy.
func (g *GossipServer) Broadcast(peers []string, b *Block) {
	msg := GossipMessage{Type: "block", Data: b}
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.Warnf("gossip: marshal block: %v", err)
		return
	}
	data = append(data, '\n')

	for _, addr := range peers {
		conn, err := net.DialTimeout("tcp", addr, connDeadline)
		if err != nil {
			logrus.Warnf("gossip: dial %s: %v", addr, err)
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(connDeadline))
		if _, err := conn.Write(data); err != nil {
			logrus.Warnf("gossip: write to %s: %v", addr, err)
		}
		conn.Close()
	}
}

// DialStatus connects to addr, sends method as a get-tip style request, and
// returns the parsed response. It is a small client helper used by the
// CLI's start command to query a bootstrap peer; not part of the core
// server contract.
func DialStatus(addr, method string) (*StatusResponse, error) {
	conn, err := net.DialTimeout("tcp", addr, connDeadline)
	if err != nil {
		return nil, fmt.Errorf("network: dial %s: %w", addr, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(connDeadline))

	req, err := json.Marshal(StatusRequest{Method: method})
	if err != nil {
		return nil, err
	}
	req = append(req, '\n')
	if _, err := conn.Write(req); err != nil {
		return nil, fmt.Errorf("network: write request: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), maxRequestBytes)
	if !scanner.Scan() {
		return nil, fmt.Errorf("network: no response from %s", addr)
	}
	var resp StatusResponse
	if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("network: decode response: %w", err)
	}
	return &resp, nil
}
