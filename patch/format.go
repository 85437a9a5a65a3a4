// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package patch

import (
	"bufio"
	"io"
	"strconv"

	"znkr.io/diffpatch"
	"znkr.io/diffpatch/internal/byteview"
	"znkr.io/diffpatch/internal/config"
	"znkr.io/diffpatch/patch/color"
)

const noNewline = "\\ No newline at end of file\n"

// Format returns p in unified format.
//
// The following options are supported: [TerminalColors], [MissingNewlineMessage],
// [SuppressBlankEmpty]
func Format[T Text](p *Patch[T], opts ...diffpatch.Option) T {
	cfg := config.FromOptions(opts, config.Formatting)
	var b byteview.Builder[T]
	format(&b, p, cfg)
	return b.Build()
}

// Write writes p in unified format to w.
//
// The following options are supported: [TerminalColors], [MissingNewlineMessage],
// [SuppressBlankEmpty]
func Write[T Text](w io.Writer, p *Patch[T], opts ...diffpatch.Option) error {
	cfg := config.FromOptions(opts, config.Formatting)
	bw := bufio.NewWriter(w)
	format(bw, p, cfg)
	return bw.Flush()
}

type writer interface {
	io.StringWriter
	io.ByteWriter
}

func format[T Text](w writer, p *Patch[T], cfg config.Config) {
	var cc config.ColorConfig
	if cfg.Color != nil {
		cc = *cfg.Color
	}

	if p.Original != "" || p.Modified != "" {
		writeLine(w, cc.Header, "--- ", p.Original)
		writeLine(w, cc.Header, "+++ ", p.Modified)
	}

	for _, h := range p.Hunks {
		header := "@@ -" + h.Old.String() + " +" + h.New.String() + " @@"
		if h.Function != "" {
			header += " " + h.Function
		}
		writeLine(w, cc.HunkHeader, header, "")

		for _, l := range h.Lines {
			content := string(l.Content)
			missing := l.MissingNewline()
			if !missing {
				content = content[:len(content)-1]
			}
			switch l.Kind {
			case Context:
				if cfg.SuppressBlankEmpty && (content == "" || content == "\r") && !missing {
					writeLine(w, cc.Match, "", content)
				} else {
					writeLine(w, cc.Match, " ", content)
				}
			case Delete:
				writeLine(w, cc.Delete, "-", content)
			case Insert:
				writeLine(w, cc.Insert, "+", content)
			default:
				panic("unknown line kind " + strconv.Itoa(int(l.Kind)))
			}
			if missing && cfg.MissingNewlineMessage {
				w.WriteString(noNewline)
			}
		}
	}
}

// writeLine writes prefix and content followed by a newline, content must not include the newline.
func writeLine(w writer, code, prefix, content string) {
	if code != "" {
		w.WriteString(code)
	}
	w.WriteString(prefix)
	w.WriteString(content)
	if code != "" {
		w.WriteString(color.Reset)
	}
	w.WriteByte('\n')
}
