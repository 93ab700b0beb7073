package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"sentinel/fetch"
	"sentinel/html"
	"sentinel/view"
)

func (s *run) image(node *html.Node) error {
	src := node.Attr("src")
	if src == "" {
		return nil
	}
	target, err := s.base.Resolve(src)
	if err != nil {
		return fmt.Errorf("bad image source %q: %w", src, err)
	}
	if s.base.Secure() && !target.Secure() {
		s.r.logger.Warn("blocked mixed-content image", zap.String("src", target.String()))
		s.page.Append(&view.Warning{
			Message: "Blocked insecure image on a secure page: " + target.String(),
		})
		return nil
	}

	resp, err := s.r.fetcher.Do(s.ctx, fetch.Request{
		URL:     target.String(),
		Timeout: s.r.cfg.Network.ImageTimeout,
	})
	if err != nil {
		return fmt.Errorf("fetching image: %w", err)
	}
	if !resp.OK() {
		return fmt.Errorf("image fetch returned status %d", resp.Status)
	}

	img, _, err := image.Decode(bytes.NewReader(resp.Body))
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}
	if max := s.r.cfg.Viewport.MaxImageWidth; img.Bounds().Dx() > max {
		img = scaleToWidth(img, max)
	}
	s.page.Append(&view.Image{Img: img})
	return nil
}

func scaleToWidth(src image.Image, width int) image.Image {
	bounds := src.Bounds()
	height := bounds.Dy() * width / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
