package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go.uber.org/multierr"

	"github.com/Faultbox/greenkeeper/internal/hole"
	"github.com/Faultbox/greenkeeper/internal/scoring"
	"github.com/Faultbox/greenkeeper/internal/surface"
	"github.com/Faultbox/greenkeeper/pkg/units"
)

func writeReport(w io.Writer, h *hole.Instance, report *hole.Report) {
	cfg, _ := h.Config()
	fmt.Fprintf(w, "Hole:      seed %d, %.1f m (%s)\n", cfg.ShapeSeed, cfg.TargetDistance, units.Format(cfg.TargetDistance))
	fmt.Fprintf(w, "Surfaces:  %d\n", report.Surfaces)
	fmt.Fprintf(w, "Obstacles: %d\n", report.Obstacles)
	fmt.Fprintf(w, "Skipped:   %d\n", report.Skipped)

	if flag, ok := h.FlagPosition(); ok {
		center, _ := h.GreenCenter()
		radius, _ := h.GreenRadius()
		fmt.Fprintf(w, "Flag:      (%.2f, %.2f, %.2f)\n", flag.X, flag.Y, flag.Z)
		fmt.Fprintf(w, "Green:     center (%.2f, %.2f) radius %.2f m\n", center.X, center.Z, radius)
	} else {
		fmt.Fprintln(w, "Flag:      none")
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OBJECT\tCATEGORY\tVERTICES\tTRIANGLES\tTEXTURED")
	for _, obj := range h.Objects() {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%t\n",
			obj.Name, obj.Category, obj.Mesh.VertexCount(), obj.Mesh.TriangleCount(), obj.Material.Textured)
	}
	tw.Flush()

	if obstacles := h.Obstacles(); len(obstacles) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TYPE\tSIZE\tX\tZ\tSLOWDOWN\tDEFLECT\tMAX RAD")
		for _, o := range obstacles {
			p := o.Properties
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.1f\n",
				o.Type, o.Size, o.X, o.Z, p.SlowdownFactor, p.DeflectionChance, p.MaxDeflectionAngle)
		}
		tw.Flush()
	}

	if errs := multierr.Errors(report.Warnings); len(errs) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Warnings:")
		for _, err := range errs {
			fmt.Fprintf(w, "  - %v\n", err)
		}
	}
}

func writeShots(w io.Writer, h *hole.Instance, scorer *scoring.Scorer, shots []shot) {
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHOT\tX\tZ\tSURFACE\tTO FLAG\tPENALTY\tBEST")
	for _, s := range shots {
		ground := s.Surface
		if ground == "" {
			var ok bool
			if ground, ok = h.SurfaceAt(s.Landing.X, s.Landing.Z); !ok {
				ground = surface.OutOfBounds
			}
		}
		r, ok := scorer.RecordShot(s.Landing, ground)
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%s\t%s\t%t\t%t\n",
			r.Shot, s.Landing.X, s.Landing.Z, r.Surface, units.Format(r.Distance), r.IsPenalty, r.Best)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nShots: %d, best %s\n", scorer.Shots(), units.Format(scorer.BestDistance()))
}
