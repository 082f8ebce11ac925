/*
Package types defines the data structures shared across bl3edit.

# Overview

The types package provides:
  - LoadedFile, the tagged union over the four file kinds the editor handles
  - SaveModel and ProfileModel, the authoritative parsed models
  - Enumerations for every editable selection (classes, SDU slots, ammo pools,
    gear, vehicles, skins, guardian rewards, science levels)
  - Game constants such as the experience table and per-slot maxima

# File kinds

A LoadedFile is identified by its HeaderType and on-disk file name:

  - HeaderPcSave, HeaderPs4Save wrap a *SaveModel
  - HeaderPcProfile, HeaderPs4Profile wrap a *ProfileModel

Two LoadedFile values are Equal when the kind and file name match; the model
contents are not compared. The registry relies on this to find a file again
after a reload replaced every value.

# Ownership

LoadedFile values are created by the codec when a directory is scanned and
are never mutated in place. Callers that need to change a model call Clone
first and work on the copy.
*/
package types
