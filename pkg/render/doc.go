// Package render turns layout documents into presentation formats: a plain
// text summary, a scalable floor-plan SVG, and a Graphviz diagram of the
// constraint graph. Rendering never mutates its inputs.
package render
