package raster_test

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/go-theft-auto/richgui"
	"github.com/go-theft-auto/richgui/backend/raster"
)

func newCanvas(t *testing.T, w, h int) *raster.Canvas {
	t.Helper()
	c, err := raster.NewCanvas(w, h)
	if err != nil {
		t.Fatalf("NewCanvas() returned error: %v", err)
	}
	return c
}

func alphaAt(c *raster.Canvas, x, y int) uint32 {
	_, _, _, a := c.Image().At(x, y).RGBA()
	return a
}

func TestFillRect(t *testing.T) {
	c := newCanvas(t, 40, 40)
	c.BeginPath()
	c.Rect(richgui.Rect{X: 10, Y: 10, W: 20, H: 20})
	c.Fill(richgui.SolidPaint(richgui.ColorRed))

	got := color.RGBAModel.Convert(c.Image().At(20, 20)).(color.RGBA)
	if got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Expected opaque red inside the rect, got %v", got)
	}
	if a := alphaAt(c, 5, 5); a != 0 {
		t.Errorf("Expected transparent outside the rect, got alpha %d", a)
	}
}

func TestScissorAndRestore(t *testing.T) {
	c := newCanvas(t, 40, 40)
	c.Save()
	c.IntersectScissor(richgui.Rect{X: 0, Y: 0, W: 20, H: 40})
	c.BeginPath()
	c.Rect(richgui.Rect{W: 40, H: 40})
	c.Fill(richgui.SolidPaint(richgui.ColorBlue))
	c.Restore()

	if a := alphaAt(c, 10, 10); a == 0 {
		t.Error("Expected paint inside the scissor")
	}
	if a := alphaAt(c, 30, 10); a != 0 {
		t.Errorf("Expected nothing outside the scissor, got alpha %d", a)
	}

	c.BeginPath()
	c.Rect(richgui.Rect{X: 25, Y: 0, W: 10, H: 10})
	c.Fill(richgui.SolidPaint(richgui.ColorBlue))
	if a := alphaAt(c, 30, 5); a == 0 {
		t.Error("Expected Restore to drop the scissor")
	}
}

func TestTranslate(t *testing.T) {
	c := newCanvas(t, 40, 40)
	c.Translate(20, 20)
	c.BeginPath()
	c.Rect(richgui.Rect{W: 5, H: 5})
	c.Fill(richgui.SolidPaint(richgui.ColorBlack))
	if a := alphaAt(c, 22, 22); a == 0 {
		t.Error("Expected the rect at the translated origin")
	}
	if a := alphaAt(c, 2, 2); a != 0 {
		t.Errorf("Expected nothing at the untranslated origin, got alpha %d", a)
	}
}

func TestTextDrawsInk(t *testing.T) {
	c := newCanvas(t, 100, 40)
	c.Text(richgui.FontBold, 24, 5, 30, richgui.ColorBlack, "HH")

	ink := false
	for y := 0; y < 40 && !ink; y++ {
		for x := 0; x < 100; x++ {
			if alphaAt(c, x, y) != 0 {
				ink = true
				break
			}
		}
	}
	if !ink {
		t.Error("Expected text to draw some pixels")
	}
}

func TestSavePNG(t *testing.T) {
	c := newCanvas(t, 8, 8)
	c.Clear(richgui.ColorWhite)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() returned error: %v", err)
	}
}

func TestNestedScissorRestore(t *testing.T) {
	c := newCanvas(t, 40, 40)
	c.Save()
	c.IntersectScissor(richgui.Rect{W: 30, H: 40})
	c.Save()
	c.Translate(5, 0)
	c.IntersectScissor(richgui.Rect{W: 5, H: 40})
	c.Restore()

	c.BeginPath()
	c.Rect(richgui.Rect{W: 40, H: 40})
	c.Fill(richgui.SolidPaint(richgui.ColorBlue))
	if a := alphaAt(c, 20, 5); a == 0 {
		t.Error("Expected the inner scissor to be dropped")
	}
	if a := alphaAt(c, 35, 5); a != 0 {
		t.Errorf("Expected the outer scissor to remain, got alpha %d", a)
	}
	c.Restore()
}

func TestTextAfterEntityIsDrawn(t *testing.T) {
	model := richgui.NewTextEditModel()
	model.SetTextContent("[e]WWWWWWWW")
	model.CreateEntity(0, 0, 3, 1)
	m := richgui.MeasureTextEdit(model, richgui.NewMonoShaper(), func(int, richgui.TextStyle) (float32, float32) {
		return 10, 10
	})

	c := newCanvas(t, 200, 40)
	entities := 0
	richgui.DrawTextEdit(c, model, m, richgui.TextRenderOptions{
		DrawEntity: func(ec richgui.Canvas, _ int, _ richgui.TextStyle, size richgui.Vec2) {
			entities++
			ec.BeginPath()
			ec.Rect(richgui.Rect{W: size.X, H: size.Y})
			ec.Fill(richgui.SolidPaint(richgui.ColorRed))
		},
	})
	if entities != 1 {
		t.Fatalf("Expected 1 entity drawn, got %d", entities)
	}

	ink := 0
	for y := 0; y < 40; y++ {
		for x := 20; x < 200; x++ {
			if alphaAt(c, x, y) != 0 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("Expected text ink after the entity, got none")
	}
}
