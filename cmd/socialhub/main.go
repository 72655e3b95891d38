// socialhub はコンテンツドラフトの作成と複数プラットフォームへの
// 一括投稿を行うAPIサーバー。
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/socialhub/internal/app"
)

func main() {
	if err := app.Run(os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "socialhub: %v\n", err)
		os.Exit(1)
	}
}
