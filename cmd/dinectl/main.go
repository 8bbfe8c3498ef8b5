// dinectl 離線工具：抓取 Spoonacular 食譜並在本機資料檔上篩選與自動完成。
package main

import (
	"os"

	"dinedecide/cmd/dinectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
