package main

import (
	"fmt"
	"io"
	"strings"

	md2wechat "github.com/zkkython/md2wechat-skills"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wechat <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a document to WeChat editor HTML")
	fmt.Fprintln(w, "  publish    Convert files and create drafts in the Official Account")
	fmt.Fprintln(w, "  serve      Start the web upload front end")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show this message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Themes:", strings.Join(md2wechat.ThemeNames(), ", "))
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wechat convert [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown or HTML document to editor-ready HTML on stdout.")
	fmt.Fprintln(w, "Reads stdin when no input file is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -s, --theme <name>     Visual theme (default: academic_gray)")
	fmt.Fprintln(w, "  -m, --mode <name>      Article mode: news, newspic")
	fmt.Fprintln(w, "  -o, --output <path>    Output file (default: stdout)")
	fmt.Fprintln(w, "      --source <url>     Source URL for the article footer")
	fmt.Fprintln(w, "      --json             Emit JSON with html, title, summary, cover, images")
	fmt.Fprintln(w, "  -v, --verbose          Show debug logging")
}

// printPublishUsage prints usage for the publish command.
func printPublishUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wechat publish <file>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert files and push each one to the draft box. Requires WECHAT_APPID")
	fmt.Fprintln(w, "and WECHAT_APP_SECRET in the environment or a .env file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -s, --theme <name>         Visual theme (default: academic_gray)")
	fmt.Fprintln(w, "  -m, --mode <name>          Article mode: news, newspic")
	fmt.Fprintln(w, "      --title <s>            Override the extracted title")
	fmt.Fprintln(w, "      --author <s>           Article author")
	fmt.Fprintln(w, "      --cover <url>          Cover image URL (default: first image)")
	fmt.Fprintln(w, "      --source <url>         Original article URL")
	fmt.Fprintln(w, "      --comment              Open the comment section")
	fmt.Fprintln(w, "      --fans-only-comment    Restrict comments to followers")
	fmt.Fprintln(w, "      --env <path>           .env file path (default: nearest .env)")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel uploads (0 = auto)")
	fmt.Fprintln(w, "  -v, --verbose              Show debug logging")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2wechat serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Start the browser upload front end.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --host <s>       Listen host (default: MD2WECHAT_HOST or 0.0.0.0)")
	fmt.Fprintln(w, "      --port <s>       Listen port (default: MD2WECHAT_PORT or 8000)")
	fmt.Fprintln(w, "      --env <path>     .env file path (default: nearest .env)")
	fmt.Fprintln(w, "  -v, --verbose        Show debug logging")
}
