// Package main provides a command-line tool for working with PAA texture files.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/dblezek/tga"
	"github.com/spf13/pflag"
	"github.com/woozymasta/paa"
)

const usage = `Usage: paatool <command> [options]

Commands:
  info    <file.paa>...           print container structure and metadata
  decode  [options] <file.paa>    convert a PAA file to PNG or TGA
  encode  [options] <file.png>    convert a PNG or TGA file to PAA

Run 'paatool <command> --help' for command options.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "info":
		err = runInfo(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	case "encode":
		err = runEncode(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runInfo(args []string) error {
	flags := pflag.NewFlagSet("info", pflag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paatool info <file.paa>...")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return fmt.Errorf("no input files")
	}

	failed := 0
	for _, path := range flags.Args() {
		if err := printInfo(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, flags.NArg())
	}

	return nil
}

func printInfo(path string) error {
	img, err := paa.Read(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  format: %s\n", img.Type)
	if len(img.Palette) > 0 {
		fmt.Printf("  palette: %d colors\n", len(img.Palette)/3)
	}

	for _, t := range img.Taggs {
		switch t.Name {
		case paa.TaggAvgc:
			if c, err := img.Taggs.AverageColor(); err == nil {
				fmt.Printf("  average color: %s\n", c)
			}
		case paa.TaggMaxc:
			if c, err := img.Taggs.MaxColor(); err == nil {
				fmt.Printf("  max color: %s\n", c)
			}
		case paa.TaggFlag:
			if f, err := img.Taggs.Transparency(); err == nil {
				fmt.Printf("  transparency: %s\n", f)
			}
		case paa.TaggSwiz:
			if s, err := img.Taggs.Swizzle(); err == nil {
				fmt.Printf("  swizzle: %s\n", s)
			}
		case paa.TaggProc:
			if p, err := img.Taggs.ProcText(); err == nil {
				fmt.Printf("  procedural: %q\n", string(p))
			}
		case paa.TaggOffs:
			// Offsets are structural; the mipmap list below covers them.
		default:
			fmt.Printf("  tagg %s: %d bytes\n", t.Name, len(t.Payload))
		}
	}

	fmt.Printf("  mipmaps: %d\n", len(img.Mipmaps))
	for i, mip := range img.Mipmaps {
		fmt.Printf("    %2d: %s\n", i, mip)
	}

	return nil
}

func runDecode(args []string) error {
	flags := pflag.NewFlagSet("decode", pflag.ExitOnError)
	level := flags.IntP("mipmap", "m", 0, "mipmap level to decode (0 is largest)")
	output := flags.StringP("output", "o", "", "output file (.png or .tga; default input name with .png)")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paatool decode [options] <file.paa>")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("exactly one input file required")
	}

	input := flags.Arg(0)
	img, err := paa.Read(input)
	if err != nil {
		return err
	}

	decoded, err := img.DecodeLevel(*level)
	if err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}

	return writeImage(out, decoded)
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga":
		err = tga.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %q: %w", path, err)
	}

	return f.Close()
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tga":
		return tga.Decode(f)
	case ".png":
		return png.Decode(f)
	default:
		img, _, err := image.Decode(f)
		return img, err
	}
}

func runEncode(args []string) error {
	flags := pflag.NewFlagSet("encode", pflag.ExitOnError)
	hints := flags.String("hints", "", "TexConvert settings file")
	suffix := flags.String("suffix", "", "settings suffix override (default derived from the file name)")
	format := flags.String("format", "", "target format override (e.g. DXT5, ARGB8888)")
	output := flags.StringP("output", "o", "", "output file (default input name with .paa)")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: paatool encode [options] <file.png|file.tga>")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("exactly one input file required")
	}

	input := flags.Arg(0)
	settings, err := resolveSettings(input, *hints, *suffix)
	if err != nil {
		return err
	}
	if *format != "" {
		t, ok := paa.TypeFromName(*format)
		if !ok {
			return fmt.Errorf("unknown format %q", *format)
		}
		settings.Format = t
	}

	src, err := readImage(input)
	if err != nil {
		return err
	}

	img, err := paa.NewEncoder(src, settings).Encode()
	if err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".paa"
	}

	return img.Write(out)
}

// resolveSettings looks up the texture's settings in the hints file, keyed
// by the explicit suffix or the one derived from the file name.
func resolveSettings(input, hintsPath, suffixOverride string) (paa.TextureSettings, error) {
	settings := paa.DefaultTextureSettings()
	if hintsPath == "" {
		return settings, nil
	}

	text, err := os.ReadFile(hintsPath)
	if err != nil {
		return settings, fmt.Errorf("read hints %q: %w", hintsPath, err)
	}

	table, err := paa.ParseSettings(string(text))
	if err != nil {
		return settings, fmt.Errorf("parse hints %q: %w", hintsPath, err)
	}

	suffix := suffixOverride
	if suffix == "" {
		suffix, _ = paa.TextureFilenameToSuffix(input)
	}
	if suffix != "" {
		if s, ok := table.Get(suffix); ok {
			return s, nil
		}
	}

	return settings, nil
}
