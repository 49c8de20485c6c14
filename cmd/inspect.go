package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Hits closer than this are considered equal when comparing the BVH
// against a linear scan.
const verifyTolerance = 1e-9

// Display scene and BVH statistics, optionally verifying the BVH or
// inspecting the surface seen through a pixel.
func InspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := loadScene(ctx.Args().First())
	if err != nil {
		return err
	}
	sc.ConstructBVH()

	logger.Noticef("scene statistics\n%s", sceneStatsTable(sc))
	logger.Noticef("BVH statistics\n%s", bvhStatsTable(sc.BVH.Stats()))
	if len(sc.PointLights)+len(sc.DirectionalLights) > 0 {
		logger.Noticef("lights\n%s", lightsTable(sc))
	}

	if pixel := ctx.String("pixel"); pixel != "" {
		x, y, err := parsePixel(pixel)
		if err != nil {
			return err
		}
		if x < 0 || x >= sc.Camera.Width || y < 0 || y >= sc.Camera.Height {
			return fmt.Errorf("pixel (%d, %d) outside %dx%d image", x, y, sc.Camera.Width, sc.Camera.Height)
		}
		logger.Noticef("pixel (%d, %d)\n%s", x, y, propertyTable(pixelProperties(sc, x, y)))
	}

	if n := ctx.Int("verify"); n > 0 {
		mismatches := verifyBVH(sc, n, ctx.Int64("seed"))
		if mismatches > 0 {
			return fmt.Errorf("BVH disagrees with brute force on %d of %d rays", mismatches, n)
		}
		logger.Noticef("BVH matches brute force on %d rays", n)
	}

	return nil
}

func sceneStatsTable(sc *scene.Scene) string {
	spheres, triangles := sc.PrimitiveCounts()
	cam := sc.Camera

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Category", "Item", "Value"})
	table.Append([]string{"Camera", "Image size", fmt.Sprintf("%dx%d", cam.Width, cam.Height)})
	table.Append([]string{"", "Vertical FOV", fmt.Sprintf("%.1f", cam.VFov)})
	table.Append([]string{"", "Eye", cam.Eye.String()})
	table.Append([]string{"", "View direction", cam.ViewDir.String()})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Geometry", "Spheres", strconv.Itoa(spheres)})
	table.Append([]string{"", "Triangles", strconv.Itoa(triangles)})
	if sc.BVH != nil && !sc.BVH.Root.IsEmpty() {
		bounds := sc.BVH.Root.Bounds
		table.Append([]string{"", "Bounds center", bounds.Center().String()})
		table.Append([]string{"", "Bounds size", bounds.Size().String()})
	}
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Lights", "Point", strconv.Itoa(len(sc.PointLights))})
	table.Append([]string{"", "Directional", strconv.Itoa(len(sc.DirectionalLights))})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Shading", "Materials", strconv.Itoa(len(sc.Materials))})
	table.Append([]string{"", "Textures", strconv.Itoa(len(sc.Textures))})
	table.SetFooter([]string{"Total", "Primitives", strconv.Itoa(len(sc.Primitives))})

	table.Render()
	return buf.String()
}

func bvhStatsTable(stats geometry.BVHStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Nodes", "Leaves", "Empty", "Max depth", "Avg leaf depth"})
	table.Append([]string{
		strconv.Itoa(stats.TotalNodes),
		strconv.Itoa(stats.LeafNodes),
		strconv.Itoa(stats.EmptyNodes),
		strconv.Itoa(stats.MaxDepth),
		fmt.Sprintf("%.2f", stats.AvgLeafDepth),
	})

	table.Render()
	return buf.String()
}

func lightsTable(sc *scene.Scene) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Type", "Position / direction", "Color", "Falloff c1 c2 c3"})
	for _, pl := range sc.PointLights {
		falloff := "none"
		if pl.Attenuated() {
			c1, c2, c3 := pl.Coefficients()
			falloff = fmt.Sprintf("%g %g %g", c1, c2, c3)
		}
		table.Append([]string{"point", pl.Position.String(), pl.Color.String(), falloff})
	}
	for _, dl := range sc.DirectionalLights {
		table.Append([]string{"directional", dl.Direction.String(), dl.Color.String(), "none"})
	}

	table.Render()
	return buf.String()
}

func propertyTable(props [][2]string) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})
	for _, p := range props {
		table.Append([]string{p[0], p[1]})
	}

	table.Render()
	return buf.String()
}

// parsePixel parses an "x,y" pixel coordinate
func parsePixel(s string) (int, int, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("pixel %q: expected x,y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("pixel %q: coordinates must be integers", s)
	}
	return x, y, nil
}

// pixelProperties casts the primary ray through pixel (x, y) and describes
// the nearest surface it hits. The scene BVH must be built.
func pixelProperties(sc *scene.Scene, x, y int) [][2]string {
	camera := renderer.NewCamera(sc.Camera)
	ray := camera.PrimaryRay(x, y)

	hit := sc.Raycast(ray, nil)
	if !hit.Hit {
		return [][2]string{{"hit", "false"}, {"background", sc.Background.String()}}
	}

	props := [][2]string{
		{"hit", "true"},
		{"distance", fmt.Sprintf("%.6f", hit.Distance)},
		{"point", hit.Point.String()},
		{"normal", hit.Normal.String()},
		{"front face", strconv.FormatBool(hit.Normal.Dot(ray.Direction) < 0)},
	}

	switch prim := hit.Primitive.(type) {
	case *geometry.Sphere:
		props = append(props,
			[2]string{"geometry", "sphere"},
			[2]string{"center", prim.Center.String()},
			[2]string{"radius", strconv.FormatFloat(prim.Radius, 'g', -1, 64)})
	case *geometry.Triangle:
		props = append(props,
			[2]string{"geometry", "triangle"},
			[2]string{"vertices", fmt.Sprintf("%v %v %v", prim.V0, prim.V1, prim.V2)},
			[2]string{"smooth", strconv.FormatBool(prim.HasNormals)})
	}

	mat := sc.Material(hit)
	props = append(props,
		[2]string{"material", strconv.Itoa(hit.MaterialIndex)},
		[2]string{"albedo", sc.Albedo(hit).String()},
		[2]string{"ka kd ks", fmt.Sprintf("%g %g %g", mat.Ka, mat.Kd, mat.Ks)},
		[2]string{"shininess", strconv.FormatFloat(mat.N, 'g', -1, 64)},
		[2]string{"opacity", strconv.FormatFloat(mat.Opacity, 'g', -1, 64)},
		[2]string{"ior", strconv.FormatFloat(mat.IOR, 'g', -1, 64)})
	if hit.TextureIndex != geometry.NoTexture {
		props = append(props,
			[2]string{"texture", strconv.Itoa(hit.TextureIndex)},
			[2]string{"uv", fmt.Sprintf("(%.4f, %.4f)", hit.U, hit.V)})
	}
	return props
}

// verifyBVH compares BVH queries with a linear scan over n seeded random
// rays and returns how many disagree. Half the rays are camera rays through
// random pixels, the rest start inside the scene bounds in random
// directions. The scene BVH must be built.
func verifyBVH(sc *scene.Scene, n int, seed int64) int {
	sampler := core.NewSeededSampler(seed)
	camera := renderer.NewCamera(sc.Camera)
	bounds := sc.BVH.Root.Bounds

	mismatches := 0
	for i := 0; i < n; i++ {
		var ray core.Ray
		if i%2 == 0 {
			px := int(sampler.Get1D() * float64(sc.Camera.Width))
			py := int(sampler.Get1D() * float64(sc.Camera.Height))
			ray = camera.PrimaryRay(px, py)
		} else {
			s := sampler.Get3D()
			size := bounds.Size()
			origin := bounds.Min.Add(core.NewVec3(s.X*size.X, s.Y*size.Y, s.Z*size.Z))
			ray = core.NewRay(origin, core.SampleInCube(sampler.Get3D(), 1))
		}

		got := sc.Raycast(ray, nil)
		want := geometry.BruteForce(sc.Primitives, ray, nil)
		if !sameHit(got, want) {
			logger.Debugf("ray %d %v: BVH hit %v at %v, brute force hit %v at %v",
				i, ray, got.Hit, got.Distance, want.Hit, want.Distance)
			mismatches++
		}
	}
	return mismatches
}

func sameHit(a, b geometry.RaycastHit) bool {
	if a.Hit != b.Hit {
		return false
	}
	return !a.Hit || math.Abs(a.Distance-b.Distance) <= verifyTolerance
}
