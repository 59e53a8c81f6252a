// Side-view sandbox: a four-legged rig walking a cross-section world
// with a floor, a wall, and a ceiling. Drive with a/d or arrows, jump
// with space, quit with q or Escape.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/hexfeld/skitter/config"
	"github.com/hexfeld/skitter/gait"
	"github.com/hexfeld/skitter/physics"
	"github.com/hexfeld/skitter/rig"
	"github.com/hexfeld/skitter/surface"
)

const (
	tickRate   = 20 * time.Millisecond
	fixedDelta = 0.02

	floorY = 0.0
	ceilY  = 7.0
	wallX  = 14.0
	bodyR  = 0.4

	cellsPerX = 4.0 // horizontal screen cells per world unit
	cellsPerY = 2.0 // vertical screen cells per world unit
)

type Sandbox struct {
	screen        tcell.Screen
	width, height int

	world    *physics.StaticWorld
	body     *physics.DynamicBody
	bodyCol  uuid.UUID
	walker   *rig.Rig
	moveSign float64
}

func NewSandbox() (*Sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	s := &Sandbox{screen: screen}
	s.width, s.height = screen.Size()

	s.world = physics.NewStaticWorld()
	s.world.AddPlane(mgl64.Vec3{0, floorY, 0}, mgl64.Vec3{0, 1, 0}, 1)
	s.world.AddPlane(mgl64.Vec3{wallX, 0, 0}, mgl64.Vec3{-1, 0, 0}, 1)
	s.world.AddPlane(mgl64.Vec3{0, ceilY, 0}, mgl64.Vec3{0, -1, 0}, 1)

	s.body = physics.NewDynamicBody(mgl64.Vec3{2, 1.5, 0}, 1)
	s.bodyCol = s.world.AddSphere(s.body.Position(), bodyR, 1, s.body.ID())

	walker, err := rig.New(s.body, s.world, config.Default(), rig.Options{
		BodyCollider: s.bodyCol,
		Shapes:       s.world,
		Velocities:   s.world,
	})
	if err != nil {
		screen.Fini()
		return nil, err
	}
	s.walker = walker

	return s, nil
}

func (s *Sandbox) step() {
	s.walker.SetMovementIntent(mgl64.Vec3{s.moveSign, 0, 0})
	s.walker.Tick(fixedDelta)
	s.body.Step(fixedDelta)
	s.world.MoveSphere(s.bodyCol, s.body.Position())
}

// toScreen maps a world position onto the side-view grid. Y grows up
// in the world and down on screen.
func (s *Sandbox) toScreen(p mgl64.Vec3) (int, int) {
	originY := s.height - 4
	return 2 + int(p.X()*cellsPerX+0.5), originY - int(p.Y()*cellsPerY+0.5)
}

func (s *Sandbox) put(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.screen.SetContent(x, y, r, nil, style)
	}
}

func (s *Sandbox) draw() {
	s.screen.Clear()

	surfStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	floorSX, floorSY := s.toScreen(mgl64.Vec3{0, floorY, 0})
	wallSX, _ := s.toScreen(mgl64.Vec3{wallX, 0, 0})
	_, ceilSY := s.toScreen(mgl64.Vec3{0, ceilY, 0})
	for x := floorSX; x <= wallSX; x++ {
		s.put(x, floorSY, '#', surfStyle)
		s.put(x, ceilSY, '#', surfStyle)
	}
	for y := ceilSY; y <= floorSY; y++ {
		s.put(wallSX, y, '#', surfStyle)
	}

	// Feet first so the body wins overlapping cells.
	for _, limb := range s.walker.Coordinator().Limbs() {
		fx, fy := s.toScreen(limb.Stepper.FootPose().Pos)
		glyph, style := 'o', tcell.StyleDefault.Foreground(tcell.ColorGreen)
		if limb.Stepper.State() == gait.StepMoving {
			glyph, style = '*', tcell.StyleDefault.Foreground(tcell.ColorYellow)
		}
		s.put(fx, fy, glyph, style)
	}

	bx, by := s.toScreen(s.body.Position())
	s.put(bx, by, '@', tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	vel := s.body.Velocity()
	status := fmt.Sprintf(" %-8s  speed %.2f  pos (%.1f, %.1f) ",
		s.walker.State(), vel.Len(), s.body.Position().X(), s.body.Position().Y())
	hudStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	if s.walker.State() == surface.StateSurface {
		hudStyle = hudStyle.Foreground(tcell.ColorAqua)
	}
	for i, r := range status {
		s.put(1+i, 1, r, hudStyle)
	}
	help := " a/d move  space jump  s stop  q quit "
	for i, r := range help {
		s.put(1+i, s.height-1, r, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	s.screen.Show()
}

func (s *Sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyLeft:
			s.moveSign = -1
		case ev.Key() == tcell.KeyRight:
			s.moveSign = 1
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'a':
				s.moveSign = -1
			case 'd':
				s.moveSign = 1
			case 's':
				s.moveSign = 0
			case ' ':
				s.walker.Jump()
			}
		}
	case *tcell.EventResize:
		s.width, s.height = s.screen.Size()
		s.screen.Sync()
	}
	return true
}

func (s *Sandbox) run() {
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- s.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !s.handleInput(ev) {
				return
			}
		case <-ticker.C:
			s.step()
			s.draw()
		}
	}
}

func main() {
	sandbox, err := NewSandbox()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer sandbox.screen.Fini()

	sandbox.run()
}
