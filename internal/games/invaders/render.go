package invaders

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Visual characters for rendering
const (
	ShipChar        = '█'
	PlayerShotChar  = '|'
	EnemyShotChar   = '!'
	BurstCoreChar   = '@'
	BurstMidChar    = '*'
	BurstEdgeChar   = '.'
	SeparatorChar   = '─'
	hudRows         = 2 // HUD line plus separator
	minScreenWidth  = 40
	minScreenHeight = 12
)

// Fixed colors that do not come from MatchConfig.
const (
	scoreTextHex  = "#ffffff"
	burstHex      = "#ff4444"
	speedAlertHex = "#ff0000"
)

// viewport maps field units onto the play area below the HUD.
type viewport struct {
	originY int
	w, h    int
	sx, sy  float64
}

func newViewport(dst *core.Screen, f Field) viewport {
	v := viewport{
		originY: hudRows,
		w:       dst.Width(),
		h:       dst.Height() - hudRows,
	}
	if f.Valid() {
		v.sx = float64(v.w) / f.Width
		v.sy = float64(v.h) / f.Height
	}
	return v
}

// cells returns the screen rectangle covering a field rectangle. Anything
// with area gets at least one cell.
func (v viewport) cells(r core.RectF) core.Rect {
	x0 := int(math.Floor(r.X * v.sx))
	y0 := int(math.Floor(r.Y * v.sy))
	x1 := max(int(math.Ceil(r.Right()*v.sx)), x0+1)
	y1 := max(int(math.Ceil(r.Bottom()*v.sy)), y0+1)
	return core.NewRect(x0, y0+v.originY, x1-x0, y1-y0)
}

func (v viewport) point(x, y float64) (int, int) {
	return int(math.Floor(x * v.sx)), int(math.Floor(y*v.sy)) + v.originY
}

// Draw renders a snapshot and its effects into dst.
func Draw(dst *core.Screen, snap Snapshot, effects []Effect, now time.Time) {
	dst.Clear()

	if dst.Width() < minScreenWidth || dst.Height() < minScreenHeight {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenWidth, minScreenHeight))
		return
	}

	drawHUD(dst, snap)
	if !snap.Field.Valid() {
		return
	}

	v := newViewport(dst, snap.Field)
	drawEnemies(dst, v, snap)
	drawBullets(dst, v, snap)
	if !snap.Player.Hit || (snap.Tick/6)%2 == 0 {
		drawTriangle(dst, v.cells(snap.Player.Rect()), false, snap.PlayerColor)
	}
	drawEffects(dst, v, effects, now)
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", snap.Score), core.ColorYellow)

	lives := "Lives: " + strings.Repeat("♥", snap.Lives)
	dst.DrawTextCenteredColored(0, lives, core.ColorRed)

	right := fmt.Sprintf("Speed: %d  Time: %s", snap.Formation.Escalations, FormatClock(snap.TimeRemaining))
	dst.DrawTextColored(dst.Width()-len([]rune(right))-1, 0, right, core.ColorCyan)

	dst.DrawHLine(0, 1, dst.Width(), SeparatorChar, core.ColorGray)
}

// FormatClock renders whole seconds as mm:ss.
func FormatClock(secs int) string {
	secs = max(secs, 0)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// drawTriangle fills r with a triangle: pointing down for enemies, up for
// the player.
func drawTriangle(dst *core.Screen, r core.Rect, inverted bool, hex string) {
	for i := 0; i < r.H; i++ {
		k := i + 1
		if inverted {
			k = r.H - i
		}
		w := max(r.W*k/r.H, 1)
		x := r.X + (r.W-w)/2
		for j := 0; j < w; j++ {
			dst.SetHex(x+j, r.Y+i, ShipChar, hex)
		}
	}
}

func drawEnemies(dst *core.Screen, v viewport, snap Snapshot) {
	for _, e := range snap.Enemies {
		if !e.Alive {
			continue
		}
		r := v.cells(e.Rect())
		drawTriangle(dst, r, true, snap.EnemyColor)

		label := strconv.Itoa(e.Points())
		if len(label) <= r.W {
			x := r.X + (r.W-len(label))/2
			for i, ch := range label {
				dst.SetHex(x+i, r.Y, ch, scoreTextHex)
			}
		}
	}
}

func drawBullets(dst *core.Screen, v viewport, snap Snapshot) {
	for _, b := range snap.PlayerBullets {
		ch := PlayerShotChar
		switch {
		case b.VX < 0:
			ch = '\\'
		case b.VX > 0:
			ch = '/'
		}
		fillRect(dst, v.cells(b.Rect()), ch, core.ColorGreen)
	}
	for _, b := range snap.EnemyBullets {
		ch := EnemyShotChar
		switch {
		case b.VX < 0:
			ch = '/'
		case b.VX > 0:
			ch = '\\'
		}
		fillRect(dst, v.cells(b.Rect()), ch, core.ColorRed)
	}
}

func fillRect(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColored(x, y, ch, c)
		}
	}
}

func drawEffects(dst *core.Screen, v viewport, effects []Effect, now time.Time) {
	for _, e := range effects {
		alpha := e.Alpha(now)
		if alpha <= 0 {
			continue
		}
		switch e.Kind {
		case EffectHitBurst:
			drawBurst(dst, v, e, alpha, now)
		case EffectSpeedAlert:
			y := v.originY + v.h/2
			text := e.Text
			x := (dst.Width() - len([]rune(text))) / 2
			hex := fade(speedAlertHex, alpha)
			for i, ch := range text {
				dst.SetHex(x+i, y, ch, hex)
			}
		}
	}
}

// drawBurst draws the expanding hit ring as an ellipse of cells. Denser
// glyphs sit near the center.
func drawBurst(dst *core.Screen, v viewport, e Effect, alpha float64, now time.Time) {
	radius := e.Radius(now)
	cx, cy := v.point(e.X, e.Y)
	rx := max(int(math.Round(radius*v.sx)), 1)
	ry := max(int(math.Round(radius*v.sy)), 1)
	hex := fade(burstHex, alpha)

	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			d := math.Hypot(float64(dx)/float64(rx), float64(dy)/float64(ry))
			if d > 1 {
				continue
			}
			ch := BurstEdgeChar
			switch {
			case d < 0.4:
				ch = BurstCoreChar
			case d < 0.75:
				ch = BurstMidChar
			}
			dst.SetHex(cx+dx, cy+dy, ch, hex)
		}
	}
}

// fade blends hex towards black as alpha drops, standing in for opacity on
// a terminal.
func fade(hex string, alpha float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	black := colorful.Color{}
	return black.BlendRgb(c, core.ClampF(alpha, 0, 1)).Clamped().Hex()
}
