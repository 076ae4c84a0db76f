package jumper

import (
	"math"

	"github.com/vovakirdan/tui-jumper/internal/config"
	"github.com/vovakirdan/tui-jumper/internal/core"
)

// Rand is the randomness the generator draws from. *math/rand.Rand
// satisfies it; tests inject scripted sequences.
type Rand interface {
	Float64() float64
}

// PlatformSpec is the generator's decision for the next platform.
type PlatformSpec struct {
	Kind      Kind
	Color     core.Color
	Companion bool // Spawn a boost platform next to it
}

// Generator decides which platforms to spawn as the camera climbs and
// hands out platform ids.
type Generator struct {
	rng     Rand
	cfg     config.JumperConfig
	canvasW float64
	canvasH float64
	nextID  int     // Id counter; the ground takes 0
	lastY   float64 // Y of the most recently created platform
}

// NewGenerator creates a generator for the given viewport.
func NewGenerator(rng Rand, cfg config.JumperConfig, canvasW, canvasH float64) *Generator {
	return &Generator{
		rng:     rng,
		cfg:     cfg,
		canvasW: canvasW,
		canvasH: canvasH,
	}
}

// Reset restarts the id counter and returns the initial platform set:
// the ground (id 0) plus any prefilled stationary platforms.
func (g *Generator) Reset() []Platform {
	g.nextID = 0

	groundH := g.cfg.Platforms.GroundHeight
	ground := g.create(PlatformSpec{Kind: KindNormal, Color: core.ColorGreen}, 0, g.canvasH-groundH, g.canvasW, groundH)
	platforms := []Platform{ground}

	for i := 0; i < g.cfg.Platforms.Prefill; i++ {
		spec := PlatformSpec{Kind: KindNormal, Color: KindNormal.Color()}
		platforms = append(platforms, g.create(spec, g.randomX(g.cfg.Platforms.Width), g.lastY-g.cfg.Platforms.Spacing, g.cfg.Platforms.Width, g.cfg.Platforms.Height))
	}
	return platforms
}

// NextID returns the id the next created platform will get.
func (g *Generator) NextID() int {
	return g.nextID
}

// MovingChance returns the probability that platform n is a moving one.
func (g *Generator) MovingChance(n int) float64 {
	gen := g.cfg.Generation
	switch {
	case n < gen.MovingFrom:
		return 0
	case n < gen.BoostFrom:
		return gen.MovingChance
	default:
		steps := math.Floor(float64(n-gen.BoostFrom) / float64(gen.MovingRampEvery))
		return math.Min(gen.MovingCap, gen.MovingChance+steps*gen.MovingRampStep)
	}
}

// NextConfig rolls the kind for platform n. Boost companions are only
// considered once n reaches the boost threshold and only for normal platforms.
func (g *Generator) NextConfig(n int) PlatformSpec {
	kind := KindNormal
	if g.rng.Float64() < g.MovingChance(n) {
		kind = KindMoving
	}

	spec := PlatformSpec{Kind: kind, Color: kind.Color()}
	if kind == KindNormal && n >= g.cfg.Generation.BoostFrom {
		spec.Companion = g.rng.Float64() < g.cfg.Generation.BoostChance
	}
	return spec
}

// MaybeSpawn appends the next platform (and its companion) once the most
// recently created platform has scrolled below the upper half-screen line.
func (g *Generator) MaybeSpawn(platforms []Platform, scrollOffset float64) []Platform {
	if g.lastY-scrollOffset <= -g.canvasH/2 {
		return platforms
	}

	spec := g.NextConfig(g.nextID)
	pc := g.cfg.Platforms
	y := g.lastY - pc.Spacing

	main := g.create(spec, g.randomX(pc.Width), y, pc.Width, pc.Height)
	platforms = append(platforms, main)

	if spec.Companion {
		boost := PlatformSpec{Kind: KindBoost, Color: KindBoost.Color()}
		platforms = append(platforms, g.create(boost, g.companionX(main), y, pc.BoostWidth, pc.Height))
	}
	return platforms
}

// companionX places a boost platform beside main: right if it fits,
// otherwise left, otherwise anywhere. Overlap is tolerated.
func (g *Generator) companionX(main Platform) float64 {
	pc := g.cfg.Platforms

	right := main.Pos.X + main.W + pc.BoostGap
	if right+pc.BoostWidth <= g.canvasW {
		return right
	}
	left := main.Pos.X - pc.BoostGap - pc.BoostWidth
	if left >= 0 {
		return left
	}
	return g.randomX(pc.BoostWidth)
}

// randomX returns a uniform x that keeps a platform of width w on canvas.
func (g *Generator) randomX(w float64) float64 {
	return g.rng.Float64() * math.Max(g.canvasW-w, 0)
}

func (g *Generator) create(spec PlatformSpec, x, y, w, h float64) Platform {
	p := Platform{
		ID:      g.nextID,
		Pos:     core.Vec2{X: x, Y: y},
		W:       w,
		H:       h,
		Kind:    spec.Kind,
		Color:   spec.Color,
		Opacity: 1,
	}
	if spec.Kind == KindMoving {
		p.Vel.X = g.cfg.Platforms.MovingSpeed
	}

	g.nextID++
	g.lastY = y
	return p
}

// GroundID is the id of the ground platform.
const GroundID = 0

// Prune drops generated platforms that scrolled past the bottom edge and
// any platform that finished fading. The ground is never scrolled away;
// once it is out of view the fall-out check takes over. Order is preserved.
func Prune(platforms []Platform, scrollOffset, canvasH float64) []Platform {
	kept := platforms[:0]
	for _, p := range platforms {
		if p.MarkedForDeletion {
			continue
		}
		if p.ID != GroundID && p.Pos.Y-scrollOffset > canvasH {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
