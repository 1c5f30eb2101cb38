package main

import (
	"fmt"
	"os"

	"portalsst.com/portalsst/security"
)

func main() {
	secret := os.Getenv("PORTAL_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "PORTAL_JWT_SECRET is not set")
		os.Exit(1)
	}

	identity := &security.PortalIdentity{
		Id:       1,
		UserName: "sesmt",
		Email:    "sesmt@portalsst.com",
	}

	token, err := security.CreateIdentityToken(identity, secret, 60*60*24)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
