// Package skyscroll is a small retained-mode scene graph for [Ebitengine]
// that renders the sky landing scene: a full-window crossfade backdrop, cloud
// sprites and text panels.
//
// # Quick start
//
// [Run] creates a window and game loop:
//
//	scene := skyscroll.NewScene()
//	// ... add nodes ...
//	skyscroll.Run(scene, skyscroll.RunConfig{
//		Title: "Sky", Width: 1280, Height: 720,
//	})
//
// Without a window, drive the scene from a [Loop]:
//
//	loop := skyscroll.StartLoop(ctx, time.Second/60, scene.Update)
//	defer loop.Stop()
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
// Typed constructors: [NewContainer], [NewSprite], [NewText], [NewCrossfade].
//
// Draw order is RenderLayer first, then tree order. [Node.SetZIndex] reorders
// siblings.
//
// # Crossfade
//
// A crossfade node owns a list of texture slots and blends the base slot into
// the target slot with a Kage shader. Mix 0 shows the base, Mix 1 the target.
// [Crossfade.Commit] makes the target the new base and resets Mix to 0.
//
// # Tweens
//
// [TweenPosition], [TweenX] and [TweenAlpha] return a [TweenGroup] that the
// caller advances each frame. There is no global animation manager.
//
// # Input
//
// Scene-level callbacks: [Scene.OnWheel], [Scene.OnTouchStart],
// [Scene.OnPointerMove]. Synthetic events queued with [Scene.InjectWheel],
// [Scene.InjectTouch] and [Scene.InjectPointer] are consumed one per frame,
// which is how JSON scripts loaded by [LoadTestScript] replay a session.
//
// [Ebitengine]: https://ebitengine.org
package skyscroll
