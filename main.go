package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"villa-client/app"
	"villa-client/config"
	"villa-client/models"
	"villa-client/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Sewa Villa terminal client starting ===")
	logger.Info("Config — API: %s | timeout: %v | session: %s",
		cfg.APIBaseURL, cfg.RequestTimeout, cfg.SessionFilePath)

	client := app.New(cfg, logger, os.Stdout)
	ctx := context.Background()

	if err := client.Navigate(ctx, "/"); err != nil {
		logger.Error("Initial render failed: %v", err)
	}
	printHelp()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n%s > ", client.Path())
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		args := strings.Fields(line)
		cmd, rest := args[0], args[1:]

		if cmd == "quit" || cmd == "exit" {
			break
		}
		if err := dispatch(ctx, client, cmd, rest, line); err != nil {
			logger.Debug("Command %q finished with error: %v", cmd, err)
		}
	}

	logger.Info("Goodbye.")
}

func dispatch(ctx context.Context, client *app.App, cmd string, args []string, line string) error {
	switch cmd {
	case "help":
		printHelp()
		return nil

	case "go":
		if len(args) != 1 {
			return usage("go <path>")
		}
		return client.Navigate(ctx, args[0])

	case "login":
		if len(args) != 2 {
			return usage("login <email> <password>")
		}
		return client.Login(ctx, args[0], args[1])

	case "logout":
		return client.Logout(ctx)

	case "register":
		if len(args) != 5 {
			return usage("register <name> <email> <phone> <password> <role>")
		}
		return client.Register(ctx, models.RegisterRequest{
			Name:     args[0],
			Email:    args[1],
			Phone:    args[2],
			Password: args[3],
			Role:     models.Role(args[4]),
		})

	case "filter":
		return client.Filter(ctx, parseFilters(args))

	case "book":
		if len(args) != 7 {
			return usage("book <firstName> <lastName> <email> <phone> <nights> <checkIn> <checkOut>")
		}
		return client.Book(ctx, models.BookingForm{
			FirstName:    args[0],
			LastName:     args[1],
			Email:        args[2],
			PhoneNumber:  args[3],
			Duration:     args[4] + " Nights",
			CheckInDate:  args[5],
			CheckOutDate: args[6],
		})

	case "confirm":
		if len(args) != 2 {
			return usage("confirm <bookingId> <image-file>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return usage("confirm <bookingId> <image-file>")
		}
		return client.ConfirmProof(ctx, id, args[1])

	case "export":
		if len(args) != 1 {
			return usage("export <bookingId>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return usage("export <bookingId>")
		}
		return client.ExportInvoice(ctx, id)

	case "villa-filter":
		if len(args) != 1 {
			return usage("villa-filter <Pending|Approved|Rejected|All>")
		}
		return client.AdminSetVillaFilter(ctx, args[0])

	case "approve-villa", "reject-villa":
		if len(args) != 1 {
			return usage(cmd + " <villaId>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return usage(cmd + " <villaId>")
		}
		return client.AdminVillaAction(ctx, id, cmd == "approve-villa")

	case "approve-booking", "reject-booking":
		if len(args) != 1 {
			return usage(cmd + " <bookingId>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return usage(cmd + " <bookingId>")
		}
		return client.AdminBookingAction(ctx, id, cmd == "approve-booking")

	case "delete-villa":
		if len(args) != 1 {
			return usage("delete-villa <villaId>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return usage("delete-villa <villaId>")
		}
		return client.DeleteVilla(ctx, id, confirmPrompt)

	case "edit-villa":
		if len(args) != 1 {
			return usage("edit-villa <villaId>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return usage("edit-villa <villaId>")
		}
		return client.EditVilla(id)

	case "add-villa":
		return addVilla(ctx, client, strings.TrimSpace(strings.TrimPrefix(line, "add-villa")))

	default:
		fmt.Printf("Unknown command %q — try help.\n", cmd)
		return nil
	}
}

// addVilla parses "name|address|description|price|guests|main.jpg[|a.jpg,b.jpg]".
func addVilla(ctx context.Context, client *app.App, raw string) error {
	parts := strings.Split(raw, "|")
	if len(parts) < 6 {
		return usage("add-villa <name>|<address>|<description>|<price>|<guests>|<main-image>[|extra,extra]")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return usage("price must be a number")
	}
	guests, err := strconv.Atoi(strings.TrimSpace(parts[4]))
	if err != nil {
		return usage("guests must be a number")
	}

	var extras []string
	if len(parts) > 6 {
		for _, p := range strings.Split(parts[6], ",") {
			if p = strings.TrimSpace(p); p != "" {
				extras = append(extras, p)
			}
		}
	}

	return client.AddVilla(ctx, models.NewVillaRequest{
		Name:        strings.TrimSpace(parts[0]),
		Location:    strings.TrimSpace(parts[1]),
		Description: strings.TrimSpace(parts[2]),
		Price:       price,
		Guests:      guests,
	}, strings.TrimSpace(parts[5]), extras)
}

func parseFilters(args []string) models.VillaFilters {
	var f models.VillaFilters
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		switch key {
		case "search":
			f.Search = value
		case "location":
			f.Location = value
		case "minPrice":
			f.MinPrice, _ = strconv.ParseFloat(value, 64)
		case "maxPrice":
			f.MaxPrice, _ = strconv.ParseFloat(value, 64)
		case "limit":
			f.Limit, _ = strconv.Atoi(value)
		}
	}
	return f
}

func confirmPrompt(villaID int64) bool {
	fmt.Printf("Are you sure you want to delete villa %d? [y/N] ", villaID)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func usage(text string) error {
	fmt.Println("Usage:", text)
	return nil
}

func printHelp() {
	fmt.Println(`
Commands:
  go <path>                      navigate (e.g. go /our-villa, go /villa-detail/7)
  login <email> <password>       sign in
  logout                         sign out
  register <name> <email> <phone> <password> <role>
  filter key=value ...           search/location/minPrice/maxPrice/limit
  book <first> <last> <email> <phone> <nights> <in> <out>
  confirm <bookingId> <image>    upload payment proof
  export <bookingId>             save invoice CSV
  villa-filter <status>          admin villa tab filter
  approve-villa|reject-villa <id>
  approve-booking|reject-booking <id>
  delete-villa <id>              owner delete (asks first)
  edit-villa <id>                owner edit (not implemented yet)
  add-villa name|addr|desc|price|guests|main.jpg[|extra,extra]
  quit`)
}
