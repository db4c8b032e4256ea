package handler

import (
	"fmt"

	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
)

const (
	accountsPath = "/api/accounts"
	profileHref  = "/swagger/index.html#/accounts"
)

// --- Request → Service input ---

func toRoles(names []string) []domain.Role {
	roles := make([]domain.Role, len(names))
	for i, n := range names {
		roles[i] = domain.Role(n)
	}
	return roles
}

func toCreateInput(req createAccountRequest, actor string) ports.CreateAccountInput {
	return ports.CreateAccountInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Roles:    toRoles(req.Roles),
		Actor:    actor,
	}
}

func toUpdateInput(req updateAccountRequest, actor string) ports.UpdateAccountInput {
	return ports.UpdateAccountInput{
		Email:    req.Email,
		Name:     req.Name,
		Roles:    toRoles(req.Roles),
		Password: req.Password,
		Actor:    actor,
	}
}

// --- Domain → HTTP response ---

func selfHref(id int) string {
	return fmt.Sprintf("%s/%d", accountsPath, id)
}

func toAccountResponse(a *domain.Account, links halLinks) accountResponse {
	roles := make([]string, len(a.Roles))
	for i, r := range a.Roles {
		roles[i] = string(r)
	}
	if links == nil {
		links = halLinks{}
	}
	links["self"] = halLink{Href: selfHref(a.ID)}
	return accountResponse{
		ID:    a.ID,
		Email: a.Email,
		Name:  a.Name,
		Roles: roles,
		Links: links,
	}
}

// toListResponse assembles the HAL listing: embedded resources, page
// metadata, and navigation links. The create-account affordance is only
// offered to an authenticated caller.
func toListResponse(page *ports.AccountPage, sort string, authenticated bool) listAccountsResponse {
	items := make([]accountResponse, len(page.Items))
	for i, a := range page.Items {
		items[i] = toAccountResponse(a, nil)
	}

	links := pageLinks(page, sort)
	links["profile"] = halLink{Href: profileHref}
	if authenticated {
		links["create-account"] = halLink{Href: accountsPath}
	}

	return listAccountsResponse{
		Embedded: embeddedAccounts{AccountList: items},
		Links:    links,
		Page: pageMetadata{
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
			Number:        page.Page,
		},
	}
}

// pageLinks builds self/first/last plus prev/next when those pages exist.
func pageLinks(page *ports.AccountPage, sort string) halLinks {
	href := func(n int) string {
		u := fmt.Sprintf("%s?page=%d&size=%d", accountsPath, n, page.Size)
		if sort != "" {
			u += "&sort=" + sort
		}
		return u
	}

	lastPage := page.TotalPages - 1
	if lastPage < 0 {
		lastPage = 0
	}

	links := halLinks{
		"self":  halLink{Href: href(page.Page)},
		"first": halLink{Href: href(0)},
		"last":  halLink{Href: href(lastPage)},
	}
	if page.Page > 0 {
		links["prev"] = halLink{Href: href(page.Page - 1)}
	}
	if page.Page < lastPage {
		links["next"] = halLink{Href: href(page.Page + 1)}
	}
	return links
}
