// Package render turns a recorded [dynamo.History] into an animated GIF.
//
// Rendering is a pure function of the history and a caller-owned
// [Context]; there is no package-level drawing state. The Context hands out
// drawing surfaces with [Context.Acquire] and takes them back with
// [Context.Release]:
//
//	rc, err := render.NewContext(render.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	anim, err := render.Render(rc, history)
//	if err != nil {
//		return err
//	}
//	return render.SaveGIF("out.gif", anim)
//
// Frame k shows the k-th position of every body and the force applied
// during step k, clamped by [ClampForce]. Every failure is returned as a
// *[dynamo.RenderError] carrying the stage that failed.
package render
