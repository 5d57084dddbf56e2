// 命令行工具：在终端执行“按名称搜索 / 获取全部”并打印三张统计表
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"country-stats/internal/config"
	"country-stats/internal/countries"
	"country-stats/internal/logger"
	"country-stats/internal/stats"
	"country-stats/internal/widget"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: country-stats [--env file] <command>")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  all               all countries")
	fmt.Fprintln(w, "  search <query>    countries whose name contains query")
}

// termPresenter：终端输出；错误写 errOut，结果写 out
type termPresenter struct {
	out    io.Writer
	errOut io.Writer
}

func (p *termPresenter) ClearError()  {}
func (p *termPresenter) HideResults() {}

func (p *termPresenter) ShowError(msg string) { fmt.Fprintln(p.errOut, msg) }

func (p *termPresenter) Render(res stats.Result) {
	fmt.Fprintf(p.out, "Countries: %d\nTotal population: %s\nAverage population: %s\n\n",
		res.Count, res.FormattedTotal(), res.FormattedAverage())

	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNTRY\tPOPULATION")
	for _, r := range res.CountryRows {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Population)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "REGION\tCOUNT")
	for _, r := range res.RegionRows {
		fmt.Fprintf(tw, "%s\t%d\n", r.Key, r.Count)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CURRENCY\tCOUNT")
	for _, r := range res.CurrencyRows {
		fmt.Fprintf(tw, "%s\t%d\n", r.Key, r.Count)
	}
	_ = tw.Flush()
}

// run：返回进程退出码
func run(ctx context.Context, args []string, src widget.Source, out, errOut io.Writer) int {
	if len(args) == 0 {
		usage(errOut)
		return 2
	}
	w := widget.New(src)
	p := &termPresenter{out: out, errOut: errOut}
	var err error
	switch args[0] {
	case "all":
		err = w.FetchAll(ctx, p)
	case "search":
		err = w.Search(ctx, strings.Join(args[1:], " "), p)
	case "help", "-h", "--help":
		usage(out)
		return 0
	default:
		usage(errOut)
		return 2
	}
	if err != nil {
		return 1
	}
	return 0
}

// splitEnvFlag：剥离 --env <file> 参数
func splitEnvFlag(args []string) (envFile string, rest []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--env" && i+1 < len(args) {
			envFile = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return envFile, rest
}

func main() {
	envFile, args := splitEnvFlag(os.Args[1:])
	config.LoadEnvFiles(envFile)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	client := countries.NewClient(cfg.CountriesBase, cfg.CountriesTimeout)
	os.Exit(run(context.Background(), args, client, os.Stdout, os.Stderr))
}
