package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

type objKey struct {
	v, vt, vn int
}

// ParseOBJ reads a Wavefront OBJ stream. It understands v, vt, vn and f
// records; other records are skipped. Faces with more than three corners
// are split into a triangle fan.
//
// Every distinct position/uv/normal triple becomes one output vertex. V
// texture coordinates are flipped (1-v) to match the GL texture origin.
func ParseOBJ(r io.Reader) (*MeshData, error) {
	var (
		positions [][3]float32
		uvs       [][2]float32
		normals   [][3]float32
	)
	mesh := &MeshData{}
	seen := make(map[objKey]uint32)

	corner := func(token string, line int) (uint32, error) {
		key, err := parseCorner(token, len(positions), len(uvs), len(normals))
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		if idx, ok := seen[key]; ok {
			return idx, nil
		}

		idx := uint32(mesh.VertexCount())
		p := positions[key.v]
		mesh.Positions = append(mesh.Positions, p[0], p[1], p[2])

		var uv [2]float32
		if key.vt >= 0 {
			uv = uvs[key.vt]
			uv[1] = 1 - uv[1]
		}
		mesh.UVs = append(mesh.UVs, uv[0], uv[1])

		var n [3]float32
		if key.vn >= 0 {
			n = normals[key.vn]
		}
		mesh.Normals = append(mesh.Normals, n[0], n[1], n[2])

		seen[key] = idx
		return idx, nil
	}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			positions = append(positions, [3]float32{v[0], v[1], v[2]})

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", line, err)
			}
			uvs = append(uvs, [2]float32{v[0], v[1]})

		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", line, err)
			}
			normals = append(normals, [3]float32{v[0], v[1], v[2]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices, got %d", line, len(fields)-1)
			}
			corners := make([]uint32, 0, len(fields)-1)
			for _, token := range fields[1:] {
				idx, err := corner(token, line)
				if err != nil {
					return nil, err
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				mesh.Indices = append(mesh.Indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("no faces")
	}
	return mesh, nil
}

// LoadOBJ parses the OBJ file at path.
func LoadOBJ(path string) (*MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return mesh, nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn" into zero-based
// indices, -1 marking an absent attribute.
func parseCorner(token string, nv, nvt, nvn int) (objKey, error) {
	parts := strings.Split(token, "/")
	if len(parts) > 3 {
		return objKey{}, fmt.Errorf("bad face vertex %q", token)
	}

	key := objKey{v: -1, vt: -1, vn: -1}
	limits := [3]int{nv, nvt, nvn}
	targets := [3]*int{&key.v, &key.vt, &key.vn}

	for i, part := range parts {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return objKey{}, fmt.Errorf("bad face vertex %q: %w", token, err)
		}
		if n < 0 {
			n = limits[i] + n + 1
		}
		if n < 1 || n > limits[i] {
			return objKey{}, fmt.Errorf("face vertex %q: index %d out of range", token, n)
		}
		*targets[i] = n - 1
	}
	if key.v < 0 {
		return objKey{}, fmt.Errorf("face vertex %q has no position", token)
	}
	return key, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}
