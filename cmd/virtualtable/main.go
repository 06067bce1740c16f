package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulldump/goconfig"

	"github.com/fulldump/virtualtable/bootstrap"
	"github.com/fulldump/virtualtable/configuration"
)

var banner = `
 _    ___      __              ________      __    __
| |  / (_)____/ /___  ______ _/ /_  __/___ _/ /_  / /__
| | / / / ___/ __/ / / / __ ` + "`" + `/ / / / / __ ` + "`" + `/ __ \/ / _ \
| |/ / / /  / /_/ /_/ / /_/ / / / / / /_/ / /_/ / /  __/
|___/_/_/   \__/\__,_/\__,_/_/ /_/  \__,_/_.___/_/\___/
                                    version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	start, _ := bootstrap.Bootstrap(c)
	start()
}
