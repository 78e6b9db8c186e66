package skyscroll

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite    CommandType = iota // DrawImage
	CommandCrossfade                    // DrawRectShader blend
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Type        CommandType
	Transform   [6]float32
	Color       color32
	BlendMode   BlendMode
	RenderLayer uint8
	treeOrder   int // assigned during traversal for stable sort

	image     *ebiten.Image
	crossfade *Crossfade
}

func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// traverse walks the node tree depth-first and emits render commands for
// visible leaf nodes. World transforms are expected to be current.
func (s *Scene) traverse(n *Node, treeOrder *int) {
	if !n.Visible {
		return
	}
	// Fully transparent subtrees draw nothing.
	if n.worldAlpha <= 0 {
		return
	}

	cmd := RenderCommand{
		Transform:   affine32(n.worldTransform),
		Color:       color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)},
		BlendMode:   n.BlendMode,
		RenderLayer: n.RenderLayer,
	}
	emit := false
	switch n.Type {
	case NodeTypeSprite:
		cmd.Type = CommandSprite
		cmd.image = n.Image
		if cmd.image == nil {
			cmd.image = WhitePixel
		}
		emit = true
	case NodeTypeText:
		if n.TextBlock != nil && n.TextBlock.Font != nil {
			if img := n.TextBlock.render(); img != nil {
				cmd.Type = CommandSprite
				cmd.image = img
				emit = true
			}
		}
	case NodeTypeCrossfade:
		if n.Crossfade != nil {
			cmd.Type = CommandCrossfade
			cmd.crossfade = n.Crossfade
			emit = true
		}
	}
	if emit {
		*treeOrder++
		cmd.treeOrder = *treeOrder
		s.commands = append(s.commands, cmd)
	}

	if len(n.children) == 0 {
		return
	}
	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, treeOrder)
	}
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
func rebuildSortedChildren(n *Node) {
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	n.childrenSorted = true
}

// sortCommands orders commands by render layer, then traversal order.
func (s *Scene) sortCommands() {
	slices.SortStableFunc(s.commands, func(a, b RenderCommand) int {
		if c := cmp.Compare(a.RenderLayer, b.RenderLayer); c != 0 {
			return c
		}
		return cmp.Compare(a.treeOrder, b.treeOrder)
	})
}

// commandGeoM converts a command's affine transform to an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	t := cmd.Transform
	m.SetElement(0, 0, float64(t[0]))
	m.SetElement(1, 0, float64(t[1]))
	m.SetElement(0, 1, float64(t[2]))
	m.SetElement(1, 1, float64(t[3]))
	m.SetElement(0, 2, float64(t[4]))
	m.SetElement(1, 2, float64(t[5]))
	return m
}

// submit draws every sorted command onto target.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.Type {
		case CommandSprite:
			op.GeoM = commandGeoM(cmd)
			op.ColorScale.Reset()
			a := cmd.Color.A
			op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)
			op.Blend = cmd.BlendMode.EbitenBlend()
			op.Filter = ebiten.FilterLinear
			target.DrawImage(cmd.image, &op)
		case CommandCrossfade:
			cmd.crossfade.draw(target, commandGeoM(cmd), cmd.Color.A)
		}
	}
}
