package render

import "github.com/lao-tseu-is-alive/go-network-background/pkg/field"

// Style holds the constant drawing attributes of the background.
type Style struct {
	ParticleColor RGBA    // fill of every dot, alpha included
	LinkColor     RGBA    // stroke of links; alpha is replaced by the link opacity
	LinkWidth     float64 // stroke width of links
}

// DefaultStyle is white dots at 0.2 alpha and 0.8px white links.
func DefaultStyle() Style {
	return Style{
		ParticleColor: White.WithAlpha(0.2),
		LinkColor:     White,
		LinkWidth:     0.8,
	}
}

// Stats describes one drawn frame.
type Stats struct {
	Generation uint64 // generation of the field that was drawn
	Particles  int
	Links      int
	Reflected  int // particles that bounced on an edge during the frame
}

// DrawFrame draws one frame of f on s and advances the simulation:
//
//  1. clear the surface;
//  2. for each particle in order, move it, reflect it off the edges and fill
//     its circle;
//  3. stroke a line for every link found by the linker.
//
// links is a scratch buffer; the links of this frame are returned so the
// caller can reuse the buffer.
func DrawFrame(s Surface, f *field.Field, style Style, linker *field.Linker, links []field.Link) (Stats, []field.Link) {
	s.Clear()
	if f == nil {
		return Stats{}, links[:0]
	}

	st := Stats{Generation: f.Generation, Particles: len(f.Particles)}
	for i := range f.Particles {
		p := &f.Particles[i]
		if fx, fy := p.Advance(f.Width, f.Height); fx || fy {
			st.Reflected++
		}
		s.FillCircle(p.Pos.X, p.Pos.Y, p.Radius, style.ParticleColor)
	}

	links = linker.Links(f, links[:0])
	for _, lk := range links {
		a, b := f.Particles[lk.I].Pos, f.Particles[lk.J].Pos
		s.StrokeLine(a.X, a.Y, b.X, b.Y, style.LinkWidth, style.LinkColor.WithAlpha(lk.Opacity))
	}
	st.Links = len(links)
	return st, links
}
