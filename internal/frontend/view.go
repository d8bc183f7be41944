package frontend

import (
	"math"

	"github.com/Versifine/veloterm/internal/comp"
	"github.com/Versifine/veloterm/internal/terrain"
	"github.com/gdamore/tcell/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

const (
	centerX = ScreenWidth / 2
	centerY = ScreenHeight / 2

	// scanAbove and scanBelow bound the vertical scan relative to the
	// player's feet.
	scanAbove = 2
	scanBelow = 15
)

// worldColumn maps a screen cell to the world block column under it and
// the z the vertical scan starts from.
func worldColumn(player comp.PosData, zoom float64, x, y int) (wx, wy, wz int32) {
	dx := float64(x-centerX) * zoom
	dy := -float64(y-centerY) * zoom
	return int32(math.Floor(player.X + dx)), int32(math.Floor(player.Y + dy)), int32(math.Floor(player.Z))
}

// screenPos projects a world position onto the screen. ok is false when
// the cell falls outside it.
func screenPos(pos, player comp.PosData, zoom float64) (x, y int, ok bool) {
	x = int((pos.X-player.X)/zoom + centerX)
	y = int(-(pos.Y-player.Y)/zoom + centerY)
	return x, y, x >= 0 && x < ScreenWidth && y >= 0 && y < ScreenHeight
}

// cell is the resolved content of one screen cell.
type cell struct {
	glyph rune
	color tcell.Color
}

type blockSource interface {
	Get(x, y, z int32) (terrain.Block, error)
}

// resolveCell scans the column from two blocks above z down to fifteen
// below. Sprites set the glyph and let the scan continue; the first filled
// block supplies the colour, and the glyph if no sprite did, and ends the
// scan. Unloaded positions are skipped.
func resolveCell(blocks blockSource, wx, wy, wz int32) cell {
	var (
		glyph    rune
		hasGlyph bool
		found    bool
		block    terrain.Block
		depth    int
	)
	for k := -scanAbove; k <= scanBelow; k++ {
		b, err := blocks.Get(wx, wy, wz-int32(k))
		if err != nil {
			continue
		}
		if s, ok := b.Sprite(); ok && s != terrain.SpriteEmpty {
			glyph, hasGlyph = spriteGlyph(s)
			continue
		}
		if b.IsFilled() {
			found, block, depth = true, b, k-scanAbove
			if !hasGlyph {
				glyph, hasGlyph = blockGlyph(b.Kind()), true
			}
			break
		}
	}

	c := cell{glyph: glyph, color: colorYellow}
	if !hasGlyph {
		c.glyph = unresolved
	}
	if found {
		rgb, _ := block.Color()
		c.color = tint(rgb, depth)
	}
	return c
}

func (v *view) drawTerrain(player comp.PosData, zoom float64) {
	blocks := v.game.Terrain()
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			wx, wy, wz := worldColumn(player, zoom, x, y)
			c := resolveCell(blocks, wx, wy, wz)
			v.screen.SetContent(x, y, c.glyph, nil, tcell.StyleDefault.Foreground(c.color).Background(colorBlack))
		}
	}
}

var bodies = donburi.NewQuery(filter.Contains(comp.Pos, comp.Body))

func (v *view) drawEntities(player comp.PosData, zoom float64) {
	bodies.Each(v.game.World(), func(entry *donburi.Entry) {
		x, y, ok := screenPos(comp.Pos.GetValue(entry), player, zoom)
		if !ok {
			return
		}
		glyph, color := bodyGlyph(comp.Body.GetValue(entry))
		v.screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(color).Background(colorBlack))
	})
}
