// issue-token prints an access token signed with the configured key, for
// local testing against the API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/itchan-dev/community/shared/config"
	"github.com/itchan-dev/community/shared/domain"
	"github.com/itchan-dev/community/shared/jwt"
)

func main() {
	var (
		configFolder string
		nickname     string
		uid          int64
		admin        bool
	)
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.StringVar(&nickname, "nickname", "", "nickname the token is issued for")
	flag.Int64Var(&uid, "uid", 1, "user id claim")
	flag.BoolVar(&admin, "admin", false, "issue an admin token")
	flag.Parse()

	if nickname == "" {
		fmt.Fprintln(os.Stderr, "-nickname is required")
		os.Exit(2)
	}

	cfg := config.MustLoad(configFolder)
	token, err := jwt.New(cfg.JwtKey(), cfg.JwtTTL()).NewToken(domain.User{Id: uid, Nickname: nickname, Admin: admin})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Println()
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost:8080/v1/posts/recent\n", token)
}
