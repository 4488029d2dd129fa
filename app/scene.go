package app

import (
	"thunderhead/hal"
	"thunderhead/internal/config"
	"thunderhead/internal/quarkgl"
)

// stage is everything built once at startup: scene, camera, controls,
// lights and the post-processing chain.
type stage struct {
	scene    *quarkgl.Scene
	camera   *quarkgl.Camera
	controls *quarkgl.OrbitController
	flash    *quarkgl.PointLight
	renderer *quarkgl.Renderer
	bloom    *quarkgl.BloomPass
	composer *quarkgl.Composer
}

func newStage(cfg config.Config, width, height int, ratio float64) *stage {
	scene := quarkgl.NewScene()
	scene.Background = quarkgl.Hex(cfg.Light.Background)
	scene.Ambient = quarkgl.AmbientLight{Color: quarkgl.Hex(cfg.Light.Ambient), Intensity: 1}

	cam := quarkgl.NewPerspectiveCamera(cfg.Camera.FOV, aspect(width, height), cfg.Camera.Near, cfg.Camera.Far)
	cam.Position = cfg.Camera.Position
	cam.Target = cfg.Camera.Target

	controls := quarkgl.NewOrbitController(cam)
	controls.EnableDamping = cfg.Controls.Damping
	controls.DampingFactor = cfg.Controls.DampingFactor
	controls.MinRadius = cfg.Controls.MinRadius
	controls.MaxRadius = cfg.Controls.MaxRadius
	controls.Apply(cam)

	flash := quarkgl.NewPointLight(quarkgl.Hex(cfg.Light.FlashColor), cfg.Light.FlashIntensity, cfg.Light.FlashDistance)
	flash.Position = cfg.Strike.Origin
	flash.SetVisible(false)
	scene.AddLight(flash)

	renderer := quarkgl.NewRenderer()
	renderer.PixelRatio = float32(ratio)
	if !cfg.Window.Smooth {
		renderer.Mode = quarkgl.RenderPixel
	}

	bloom := quarkgl.NewBloomPass(float32(cfg.Bloom.Strength), float32(cfg.Bloom.Radius), float32(cfg.Bloom.Threshold))
	bloom.Levels = cfg.Bloom.Levels

	pw, ph := hal.PhysicalSize(width, height, ratio)
	composer := quarkgl.NewComposer(pw, ph)
	composer.AddPass(quarkgl.NewRenderPass(renderer, scene, cam))
	composer.AddPass(bloom)

	return &stage{
		scene:    scene,
		camera:   cam,
		controls: controls,
		flash:    flash,
		renderer: renderer,
		bloom:    bloom,
		composer: composer,
	}
}

// resize updates the camera aspect and the render output size.
func (st *stage) resize(width, height int, ratio float64) {
	st.camera.SetAspect(aspect(width, height))
	st.renderer.PixelRatio = float32(ratio)
	st.composer.SetSize(hal.PhysicalSize(width, height, ratio))
}

func aspect(width, height int) float32 {
	return float32(max(width, 1)) / float32(max(height, 1))
}
