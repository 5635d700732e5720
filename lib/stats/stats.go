package stats

import (
	"sync"
	"time"

	"github.com/fosdem/glquad/lib/utils"
	"github.com/go-gl/mathgl/mgl32"
)

// Stats is written by the render loop and read by the API.
type Stats struct {
	mu sync.Mutex

	fps       uint64
	frames    uint64
	colour    mgl32.Vec4
	paused    bool
	wsClients int

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	now          func() time.Time
}

// Snapshot is the JSON form of Stats.
type Snapshot struct {
	Uptime    float64 `json:"uptime"`
	FPS       uint64  `json:"fps"`
	Frames    uint64  `json:"frames"`
	Colour    string  `json:"colour"`
	Paused    bool    `json:"paused"`
	WsClients int     `json:"ws_clients"`
}

func New() *Stats {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Stats {
	s := &Stats{now: now}
	s.start = now()
	s.frameTimer = s.start
	return s
}

// Update is called once per presented frame.
func (s *Stats) Update(colour mgl32.Vec4, paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames++
	s.frameCounter++
	if now := s.now(); now.Sub(s.frameTimer) >= 1*time.Second {
		s.rollWindow(now)
	}
	s.colour = colour
	s.paused = paused
}

// rollWindow publishes the frames counted since the last window.
// The caller holds the lock.
func (s *Stats) rollWindow(now time.Time) {
	s.fps = s.frameCounter
	s.frameCounter = 0
	s.frameTimer = now
}

// SetColour publishes colour without counting a frame.
func (s *Stats) SetColour(colour mgl32.Vec4) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.colour = colour
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wsClients = n
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Uptime:    s.now().Sub(s.start).Seconds(),
		FPS:       s.fps,
		Frames:    s.frames,
		Colour:    utils.ColourFormat(s.colour),
		Paused:    s.paused,
		WsClients: s.wsClients,
	}
}
