// Package quarkgl is a small software 3D engine for line-based effects.
//
// It provides a scene graph of groups and line objects, a perspective camera
// with damped orbit controls, ambient and point lights, and a composer that
// chains a scene render pass with post-processing passes such as bloom.
//
// Pipeline (fixed):
//
//	Scene → View/Projection → Clipping → Line rasterization → Passes → Frame output.
//
// The renderer is software-only and draws into a caller-provided Target.
// Resources owned by line objects (geometry and material) must be released
// with Dispose once the object leaves the scene.
package quarkgl
